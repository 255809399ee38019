package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aguxez/mealfinder/models"
)

type fakeFetcher struct {
	meals map[string]*models.Meal
	terms []string
}

func (f *fakeFetcher) FetchMeal(ctx context.Context, term string) *models.Meal {
	f.terms = append(f.terms, term)
	return f.meals[term]
}

type fakeNotes struct {
	notes string
	err   error
	got   []models.Meal
}

func (f *fakeNotes) WriteNotes(ctx context.Context, meal models.Meal) (string, error) {
	f.got = append(f.got, meal)
	return f.notes, f.err
}

var pasta = &models.Meal{ID: "52854", Name: "Pasta Carbonara", Thumbnail: "https://example.com/pasta.jpg", Instructions: "Cook pasta..."}

func newServer(t *testing.T, fetcher MealFetcher, notes NotesWriter) (*httptest.Server, *models.StateManager) {
	t.Helper()
	state := &models.StateManager{}
	mux := http.NewServeMux()
	NewHandler(fetcher, notes, state, nil).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, state
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestHandleMealRequestReplacesAndClearsState(t *testing.T) {
	fetcher := &fakeFetcher{meals: map[string]*models.Meal{"Pasta": pasta}}
	server, state := newServer(t, fetcher, nil)

	status, body := get(t, server.URL+"/meal?s=Pasta")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var got mealResponse
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Meal == nil || got.Meal.Name != "Pasta Carbonara" {
		t.Fatalf("unexpected body %s", body)
	}
	if current, ok := state.CurrentMeal(); !ok || current.ID != "52854" {
		t.Fatalf("expected current meal to be stored, got %+v", current)
	}

	status, body = get(t, server.URL+"/meal?s=Nothing")
	if status != http.StatusOK {
		t.Fatalf("expected 200 for not found, got %d", status)
	}
	if strings.TrimSpace(body) != `{"meal":null}` {
		t.Fatalf("expected null meal, got %s", body)
	}
	if _, ok := state.CurrentMeal(); ok {
		t.Fatalf("expected slot cleared after empty result")
	}

	get(t, server.URL+"/meal")
	if len(fetcher.terms) != 3 || fetcher.terms[2] != "" {
		t.Fatalf("expected random fetch with empty term, got %q", fetcher.terms)
	}
}

func TestHandleMealRequestRejectsPost(t *testing.T) {
	server, _ := newServer(t, &fakeFetcher{}, nil)
	resp, err := http.Post(server.URL+"/meal", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func post(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestHandleNotesRequest(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		server, _ := newServer(t, &fakeFetcher{}, nil)
		if status, _ := post(t, server.URL+"/notes"); status != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", status)
		}
	})

	t.Run("no current meal", func(t *testing.T) {
		server, _ := newServer(t, &fakeFetcher{}, &fakeNotes{notes: "x"})
		if status, _ := post(t, server.URL+"/notes"); status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
	})

	t.Run("writes notes for current meal", func(t *testing.T) {
		notes := &fakeNotes{notes: "## Shopping list"}
		server, state := newServer(t, &fakeFetcher{}, notes)
		state.UpdateMeal(pasta)

		status, body := post(t, server.URL+"/notes")
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		var got notesResponse
		if err := json.Unmarshal([]byte(body), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.MealID != "52854" || got.Notes != "## Shopping list" {
			t.Fatalf("unexpected response %+v", got)
		}
		if len(notes.got) != 1 || notes.got[0].Name != "Pasta Carbonara" {
			t.Fatalf("notes written for wrong meal: %+v", notes.got)
		}
	})

	t.Run("agent failure", func(t *testing.T) {
		server, state := newServer(t, &fakeFetcher{}, &fakeNotes{err: errors.New("llm down")})
		state.UpdateMeal(pasta)
		if status, _ := post(t, server.URL+"/notes"); status != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", status)
		}
	})
}
