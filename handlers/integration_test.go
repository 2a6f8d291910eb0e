// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/areamap/models"
	"github.com/danielhkuo/areamap/testutil"
)

// TestFullAreaWorkflow walks two users through create, list and delete and
// checks that neither sees the other's areas
func TestFullAreaWorkflow(t *testing.T) {
	h, _, _ := setupAreaHandler(t)

	create := func(name, user string) models.Area {
		t.Helper()
		req := testutil.MakeRequest("POST", "/api/areas", models.CreateAreaRequest{
			Name:        name,
			Coordinates: testutil.TestTriangle,
			UserID:      user,
		}, nil)
		w := httptest.NewRecorder()
		h.CreateArea(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
		var a models.Area
		testutil.AssertJSON(t, w, &a)
		return a
	}

	list := func(user string) []models.Area {
		t.Helper()
		req := testutil.MakeRequest("GET", "/api/areas?userId="+user, nil, nil)
		w := httptest.NewRecorder()
		h.ListAreas(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var areas []models.Area
		testutil.AssertJSON(t, w, &areas)
		return areas
	}

	// Step 1: Both users create areas
	aliceHome := create("Home", "alice")
	aliceWork := create("Work", "alice")
	bobGym := create("Gym", "bob")

	// Step 2: Each user lists only their own
	alice := list("alice")
	if len(alice) != 2 || alice[0].ID != aliceHome.ID || alice[1].ID != aliceWork.ID {
		t.Fatalf("Unexpected areas for alice: %+v", alice)
	}
	bob := list("bob")
	if len(bob) != 1 || bob[0].ID != bobGym.ID {
		t.Fatalf("Unexpected areas for bob: %+v", bob)
	}

	// Step 3: Records come back exactly as created
	if alice[0].Name != "Home" || len(alice[0].Coordinates) != 3 || alice[0].Coordinates[1] != testutil.TestTriangle[1] {
		t.Errorf("Record changed in storage: %+v", alice[0])
	}

	// Step 4: Delete one of alice's areas
	req := testutil.MakeRequest("DELETE", "/api/areas?id="+aliceHome.ID, nil, nil)
	w := httptest.NewRecorder()
	h.DeleteArea(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	alice = list("alice")
	if len(alice) != 1 || alice[0].ID != aliceWork.ID {
		t.Errorf("Expected only Work left for alice, got %+v", alice)
	}
	if len(list("bob")) != 1 {
		t.Error("Deleting alice's area changed bob's list")
	}

	// Step 5: Second delete of the same id is a 404 and changes nothing
	req = testutil.MakeRequest("DELETE", "/api/areas?id="+aliceHome.ID, nil, nil)
	w = httptest.NewRecorder()
	h.DeleteArea(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	if len(list("alice")) != 1 {
		t.Error("404 delete changed the list")
	}
}
