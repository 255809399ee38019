package api

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/aguxez/mealfinder/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type MealFetcher interface {
	FetchMeal(ctx context.Context, term string) *models.Meal
}

type NotesWriter interface {
	WriteNotes(ctx context.Context, meal models.Meal) (string, error)
}

type mealResponse struct {
	Meal *models.Meal `json:"meal"`
}

type notesResponse struct {
	MealID string `json:"meal_id"`
	Notes  string `json:"notes"`
}

// Handler serves meals from a fetcher and tracks the last one served.
type Handler struct {
	fetcher MealFetcher
	notes   NotesWriter
	state   *models.StateManager
	log     *zap.Logger
}

// NewHandler wires the service. notes may be nil when the agent is disabled.
func NewHandler(fetcher MealFetcher, notes NotesWriter, state *models.StateManager, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{fetcher: fetcher, notes: notes, state: state, log: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/meal", h.HandleMealRequest)
	mux.HandleFunc("/notes", h.HandleNotesRequest)
}

// HandleMealRequest fetches by ?s= (random when empty) and replaces the
// current meal with the result, clearing it when nothing was found.
func (h *Handler) HandleMealRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	term := r.URL.Query().Get("s")
	h.log.Info("fetching meal", zap.String("term", term))

	meal := h.fetcher.FetchMeal(r.Context(), term)
	h.state.UpdateMeal(meal)

	writeJSON(w, mealResponse{Meal: meal})
}

func (h *Handler) HandleNotesRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.notes == nil {
		http.Error(w, "kitchen notes are disabled", http.StatusServiceUnavailable)
		return
	}

	meal, ok := h.state.CurrentMeal()
	if !ok {
		http.Error(w, "no meal was found", http.StatusNotFound)
		return
	}

	notes, err := h.notes.WriteNotes(r.Context(), meal)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.log.Error("writing notes", zap.String("meal_id", meal.ID), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, notesResponse{MealID: meal.ID, Notes: notes})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
