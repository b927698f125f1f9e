package handlers_test

import (
	"net/http"
	"testing"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/middleware"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStoreProfile(t *testing.T) {
	r := setupAPI(t)
	store := createStore(t, "Bento Ichi")
	staff := createStaff(t, "staff1", store.ID, models.RoleNameStaff)

	w := doJSON(t, r, http.MethodGet, "/api/store/profile", accessToken(t, staff), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Store models.Store `json:"store"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, "Bento Ichi", body.Store.Name)
	assert.Equal(t, store.ID, body.Store.ID)
}

func TestUpdateStoreProfile(t *testing.T) {
	r := setupAPI(t)
	store := createStore(t, "Bento Ichi")
	owner := createStaff(t, "owner1", store.ID, models.RoleNameOwner)
	manager := createStaff(t, "manager1", store.ID, models.RoleNameManager)

	t.Run("owner updates the profile", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/store/profile", accessToken(t, owner), map[string]interface{}{
			"name":         "Bento Ichi Honten",
			"opening_time": "10:00:00",
			"closing_time": "20:30:00",
			"address":      "1-2-3 Sakura-dori",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var reloaded models.Store
		require.NoError(t, config.DB.First(&reloaded, store.ID).Error)
		assert.Equal(t, "Bento Ichi Honten", reloaded.Name)
		assert.Equal(t, "10:00:00", reloaded.OpeningTime)
		assert.Equal(t, "20:30:00", reloaded.ClosingTime)
		assert.Equal(t, "1-2-3 Sakura-dori", reloaded.Address)
	})

	t.Run("malformed opening time rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/store/profile", accessToken(t, owner), map[string]interface{}{
			"opening_time": "ten in the morning",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("managers cannot edit the profile", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/store/profile", accessToken(t, manager), map[string]interface{}{
			"name": "Hijacked",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), middleware.ForbiddenMessage)

		var reloaded models.Store
		require.NoError(t, config.DB.First(&reloaded, store.ID).Error)
		assert.NotEqual(t, "Hijacked", reloaded.Name)
	})
}

func TestStateMachineInfoEndpoint(t *testing.T) {
	r := setupAPI(t)

	w := doJSON(t, r, http.MethodGet, "/api/state-machine", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		StateMachine []struct {
			From  string `json:"from"`
			To    string `json:"to"`
			Actor string `json:"actor"`
		} `json:"state_machine"`
		TerminalStates []string `json:"terminal_states"`
	}
	decodeBody(t, w, &body)
	assert.Len(t, body.StateMachine, 9)
	assert.ElementsMatch(t, []string{"completed", "cancelled"}, body.TerminalStates)
}
