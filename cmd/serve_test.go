package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obbardc/fancy-free-walks/internal/walk"
)

var serveWalks = []walk.Walk{
	{Name: "near", Length: 3.0, Distance: 1.2},
	{Name: "mid", Length: 6.5, Distance: 4.8},
	{Name: "far", Length: 10.0, Distance: 22.1},
}

func TestServeMux_Health(t *testing.T) {
	mux := newServeMux(serveWalks)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeMux_Walks(t *testing.T) {
	mux := newServeMux(serveWalks)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/walks", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []walk.Walk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "near", got[0].Name)
}

func TestServeMux_WalksFiltered(t *testing.T) {
	mux := newServeMux(serveWalks)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/walks?max_distance=5&min_length=4", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []walk.Walk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "mid", got[0].Name)
}

func TestServeMux_WalksBadQuery(t *testing.T) {
	mux := newServeMux(serveWalks)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/walks?max_distance=close", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilterWalks_NoFilters(t *testing.T) {
	got, err := filterWalks(serveWalks, "", "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
