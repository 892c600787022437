package directory

import "roster-cli/internal/model"

// Modal is the detail overlay. It is either closed or open on exactly one
// record; opening while open replaces the record in place.
type Modal struct {
	status model.ModalStatus
	record model.Person

	// hidden mirrors aria-hidden; scrollLocked suppresses background scrolling.
	hidden       bool
	scrollLocked bool
}

func NewModal() *Modal {
	return &Modal{status: model.ModalClosed, hidden: true}
}

// Open shows p. A nil record is ignored and reported as false.
func (m *Modal) Open(p *model.Person) bool {
	if p == nil {
		return false
	}
	m.status = model.ModalOpen
	m.record = *p
	m.hidden = false
	m.scrollLocked = true
	return true
}

// Close hides the modal. Returns false if it was already closed.
func (m *Modal) Close() bool {
	if m.status != model.ModalOpen {
		return false
	}
	m.status = model.ModalClosed
	m.record = model.Person{}
	m.hidden = true
	m.scrollLocked = false
	return true
}

// Escape closes only an open modal.
func (m *Modal) Escape() bool {
	if !m.IsOpen() {
		return false
	}
	return m.Close()
}

func (m *Modal) Status() model.ModalStatus { return m.status }

func (m *Modal) IsOpen() bool { return m.status == model.ModalOpen }

// Record returns the displayed person while open.
func (m *Modal) Record() (model.Person, bool) {
	if !m.IsOpen() {
		return model.Person{}, false
	}
	return m.record, true
}

func (m *Modal) Hidden() bool { return m.hidden }

func (m *Modal) ScrollLocked() bool { return m.scrollLocked }
