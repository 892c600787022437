package cli

import (
	"fmt"
	"strconv"
	"strings"

	"roster-cli/internal/model"
	"roster-cli/internal/query"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var search, role, sortFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List people matching a search and role, in name order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := model.ParseSortOrder(sortFlag)
			if err != nil {
				return err
			}
			engine, err := query.New(app.cfg.Locale)
			if err != nil {
				return err
			}
			st, err := loadStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}

			state := model.DefaultQueryState()
			state.Search = search
			state.Role = role
			state.Sort = order

			people := engine.Apply(st.Records(), state)
			return writeOut(cmd, app, map[string]any{
				"data": people,
				"meta": map[string]any{
					"count":  len(people),
					"total":  st.Len(),
					"sort":   string(order),
					"source": st.Source().String(),
				},
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive name substring")
	cmd.Flags().StringVar(&role, "role", "", "Exact role (empty = any)")
	cmd.Flags().StringVar(&sortFlag, "sort", string(model.SortNameAsc), "Name order (name-asc|name-desc)")
	return cmd
}

func newRolesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the distinct roles in the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": st.Roles()})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <person-id>",
		Short: "Show one person, including their story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.TrimSpace(args[0])
			id, err := strconv.Atoi(raw)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid person id %q", raw))
			}
			st, err := loadStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, ok := st.FindByID(id)
			if !ok {
				return writeErr(cmd, errPersonNotFound(id))
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}
