package directory

import (
	"slices"

	"roster-cli/internal/model"
	"roster-cli/internal/query"
	"roster-cli/internal/store"

	"go.uber.org/zap"
)

// Renderer draws the card collection. Render always replaces every card;
// SetView only rearranges the cards already drawn.
type Renderer interface {
	Render(people []model.Person, view model.ViewMode)
	SetView(view model.ViewMode)
	SetRoles(roles []string)
}

// Controller owns the query state and dispatches input events. All calls
// happen on one goroutine; every Dispatch finishes its render before
// returning.
type Controller struct {
	store    *store.Store
	engine   query.Engine
	renderer Renderer
	modal    *Modal
	logger   *zap.Logger

	state   model.QueryState
	visible []model.Person
	loaded  bool
	loadErr error
}

func NewController(st *store.Store, engine query.Engine, r Renderer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		store:    st,
		engine:   engine,
		renderer: r,
		modal:    NewModal(),
		logger:   logger,
		state:    model.DefaultQueryState(),
	}
}

func (c *Controller) State() model.QueryState { return c.state }

func (c *Controller) Modal() *Modal { return c.modal }

// Visible returns the last rendered list.
func (c *Controller) Visible() []model.Person { return slices.Clone(c.visible) }

// Loaded reports whether a DataLoaded event has been handled yet.
func (c *Controller) Loaded() bool { return c.loaded }

// LoadErr is the error of the most recent load, if any.
func (c *Controller) LoadErr() error { return c.loadErr }

func (c *Controller) Dispatch(ev Event) {
	switch ev := ev.(type) {
	case DataLoaded:
		c.handleLoaded(ev)
	case SearchChanged:
		c.state.Search = ev.Text
		c.refresh()
	case RoleChanged:
		c.state.Role = ev.Role
		c.refresh()
	case SortChanged:
		c.state.Sort = ev.Order
		c.refresh()
	case ViewToggled:
		c.state.View = c.state.View.Toggle()
		c.renderer.SetView(c.state.View)
	case CardActivated:
		p, ok := c.store.FindByID(ev.ID)
		if !ok {
			c.logger.Debug("card activation missed", zap.Int("id", ev.ID))
			return
		}
		c.modal.Open(&p)
	case CloseRequested, OverlayClicked:
		c.modal.Close()
	case EscapePressed:
		c.modal.Escape()
	}
}

func (c *Controller) handleLoaded(ev DataLoaded) {
	c.loaded = true
	c.loadErr = ev.Err
	if ev.Err == nil {
		if err := c.store.Replace(ev.Records); err != nil {
			c.loadErr = &store.LoadError{Source: c.store.Source().String(), Err: err}
		}
	}
	if c.loadErr != nil {
		c.logger.Error("load people",
			zap.String("source", c.store.Source().String()),
			zap.Error(c.loadErr),
		)
		_ = c.store.Replace(nil)
	}
	c.renderer.SetRoles(c.store.Roles())
	c.refresh()
}

func (c *Controller) refresh() {
	c.visible = c.engine.Apply(c.store.Records(), c.state)
	c.renderer.Render(c.visible, c.state.View)
}
