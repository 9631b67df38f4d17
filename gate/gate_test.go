package gate

import (
	"testing"

	"bac_exam_platform/models"
)

func TestIsItemLocked(t *testing.T) {
	user := &models.User{ID: 7, Role: models.RoleStudent}

	for index := 0; index < 6; index++ {
		for freeLimit := 0; freeLimit < 4; freeLimit++ {
			for _, u := range []*models.User{nil, user} {
				want := u == nil && index >= freeLimit
				if got := IsItemLocked(index, u, freeLimit); got != want {
					t.Errorf("IsItemLocked(%d, %v, %d) = %v, want %v", index, u != nil, freeLimit, got, want)
				}
			}
		}
	}
}

func TestLockFlags(t *testing.T) {
	flags := LockFlags(3, nil)
	want := []bool{false, true, true}
	for i := range want {
		if flags[i] != want[i] {
			t.Fatalf("anonymous flags = %v, want %v", flags, want)
		}
	}

	for i, locked := range LockFlags(3, &models.User{ID: 1}) {
		if locked {
			t.Errorf("item %d locked for signed-in user", i)
		}
	}
}

func TestLockOverlay(t *testing.T) {
	o := LockOverlay(KindQCM, false)
	if o.Title != "Contenu Premium" {
		t.Errorf("title = %q", o.Title)
	}
	if o.Subtitle != "Connectez-vous pour débloquer" {
		t.Errorf("subtitle = %q", o.Subtitle)
	}
	if len(o.Actions) != 2 || o.Actions[0].ID != "login" || o.Actions[1].ID != "register" {
		t.Errorf("actions = %+v", o.Actions)
	}

	unknown := LockOverlay("video", false)
	if unknown.Kind != KindContent {
		t.Errorf("unknown kind mapped to %q, want %q", unknown.Kind, KindContent)
	}
}
