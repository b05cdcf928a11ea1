package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/repositories"
	"github.com/cbodonnell/torchlight/pkg/state"
	"github.com/cbodonnell/torchlight/pkg/version"
	"github.com/gorilla/mux"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: version.Get(),
		})
	}
}

type ListPlayersResponse struct {
	Timestamp int64                  `json:"timestamp"`
	Players   []state.PlayerSnapshot `json:"players"`
}

func HandleListPlayers(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get snapshot: %v", err)
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			return
		}

		players := make([]state.PlayerSnapshot, 0, len(snapshot.Players))
		for _, player := range snapshot.Players {
			players = append(players, player)
		}
		sort.Slice(players, func(i, j int) bool { return players[i].ClientID < players[j].ClientID })

		writeJSON(w, http.StatusOK, ListPlayersResponse{
			Timestamp: snapshot.Timestamp,
			Players:   players,
		})
	}
}

func HandleGetPlayer(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := strconv.ParseUint(mux.Vars(r)["clientID"], 10, 32)
		if err != nil {
			http.Error(w, "Invalid client ID", http.StatusBadRequest)
			return
		}

		snapshot, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get snapshot: %v", err)
			http.Error(w, "Failed to get player", http.StatusInternalServerError)
			return
		}

		player, ok := snapshot.Players[uint32(clientID)]
		if !ok {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, player)
	}
}

func HandleGetInventory(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		inventory, err := repository.LoadPlayerInventory(r.Context(), name)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Inventory not found", http.StatusNotFound)
				return
			}
			log.Error("failed to load inventory for %s: %v", name, err)
			http.Error(w, "Failed to load inventory", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, inventory)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
