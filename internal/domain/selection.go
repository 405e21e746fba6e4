package domain

import "github.com/google/uuid"

// IngredientSelection is one entry of a build's selection snapshot.
type IngredientSelection struct {
	IngredientID uuid.UUID
	Kind         ModifierKind
}

// SelectionModel tracks the ingredient choices of one in-progress build.
// Every toggle advances the ingredient one position around the ring
// unset -> INCLUDED -> EXTRA -> EXCLUDED -> unset. Unset ingredients are
// simply absent from the model.
type SelectionModel struct {
	order []uuid.UUID
	kinds map[uuid.UUID]ModifierKind
}

func NewSelectionModel() *SelectionModel {
	return &SelectionModel{kinds: make(map[uuid.UUID]ModifierKind)}
}

// Toggle advances the ingredient exactly one position. Ingredients the model
// has never seen start the cycle at INCLUDED.
func (m *SelectionModel) Toggle(ingredientID uuid.UUID) {
	kind, ok := m.kinds[ingredientID]
	if !ok {
		m.kinds[ingredientID] = ModifierIncluded
		m.order = append(m.order, ingredientID)
		return
	}

	switch kind {
	case ModifierIncluded:
		m.kinds[ingredientID] = ModifierExtra
	case ModifierExtra:
		m.kinds[ingredientID] = ModifierExcluded
	default: // EXCLUDED -> unset
		delete(m.kinds, ingredientID)
		for i, id := range m.order {
			if id == ingredientID {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
}

// Kind reports the current state of an ingredient; ok is false when unset.
func (m *SelectionModel) Kind(ingredientID uuid.UUID) (ModifierKind, bool) {
	kind, ok := m.kinds[ingredientID]
	return kind, ok
}

// Snapshot returns the selected ingredients in insertion order. Unset
// ingredients never appear.
func (m *SelectionModel) Snapshot() []IngredientSelection {
	out := make([]IngredientSelection, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, IngredientSelection{IngredientID: id, Kind: m.kinds[id]})
	}
	return out
}
