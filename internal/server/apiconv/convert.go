// Package apiconv converts between the wire messages in internal/api and
// the server models. Both transports use it, so internal/api stays free of
// server types.
package apiconv

import (
	"github.com/dmitrijs2005/onepass/internal/api"
	"github.com/dmitrijs2005/onepass/internal/server/models"
)

func Entry(e *models.Entry) api.Entry {
	return api.Entry{ID: e.ID, Title: e.Title, URL: e.URL, Username: e.Username, Password: e.Password}
}

// Summaries never returns nil, so an empty vault encodes as [].
func Summaries(in []models.Summary) []api.Summary {
	out := make([]api.Summary, 0, len(in))
	for _, s := range in {
		out = append(out, api.Summary{ID: s.ID, Title: s.Title, URL: s.URL, Username: s.Username})
	}
	return out
}

func NewEntry(r *api.AddRequest) models.NewEntry {
	return models.NewEntry{Title: r.Title, URL: r.URL, Username: r.Username, Password: r.Password}
}

func EntryUpdate(r *api.UpdateRequest) models.EntryUpdate {
	return models.EntryUpdate{
		Title:    change(r.Title),
		URL:      change(r.URL),
		Username: change(r.Username),
		Password: change(r.Password),
	}
}

func change(n api.NullableString) models.FieldChange {
	switch {
	case !n.Set:
		return models.Keep()
	case n.Value == nil:
		return models.Clear()
	default:
		return models.SetTo(*n.Value)
	}
}
