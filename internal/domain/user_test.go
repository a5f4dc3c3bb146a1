package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestUser_SavedIDs(t *testing.T) {
	t.Parallel()

	m, l, r := uuid.New(), uuid.New(), uuid.New()
	u := &User{
		SavedMushrooms: []uuid.UUID{m},
		SavedLocations: []uuid.UUID{l},
		SavedRecipes:   []uuid.UUID{r},
	}

	tests := []struct {
		kind SavedKind
		want uuid.UUID
	}{
		{SavedKindMushrooms, m},
		{SavedKindLocations, l},
		{SavedKindRecipes, r},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()
			got := u.SavedIDs(tt.kind)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("SavedIDs(%s) = %v, want [%s]", tt.kind, got, tt.want)
			}
		})
	}

	if got := u.SavedIDs(SavedKind("comments")); got != nil {
		t.Errorf("SavedIDs(comments) = %v, want nil", got)
	}
}

func TestUserUpdateParams_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(UserUpdateParams{}).IsEmpty() {
		t.Error("zero params should be empty")
	}

	country := ""
	if (UserUpdateParams{Country: &country}).IsEmpty() {
		t.Error("params clearing the country should not be empty")
	}
}
