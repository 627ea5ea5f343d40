package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"go-rack-editor/internal/rack"
)

// The wire types use pointers so a missing field can be told apart from a
// zero value. Every record must carry all four fields.
type wireRecord struct {
	X        *float64       `json:"x"`
	Y        *float64       `json:"y"`
	Selected *bool          `json:"selected"`
	ID       *rack.PluginID `json:"id"`
}

type wireState struct {
	Plugins *[]wireRecord `json:"plugins"`
}

// Encode writes s as indented JSON.
func Encode(w io.Writer, s rack.State) error {
	if s.Plugins == nil {
		s.Plugins = []rack.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode rack state: %w", err)
	}
	return nil
}

// Decode reads a rack state and rejects anything that is not a complete
// {"plugins": [...]} document.
func Decode(r io.Reader) (rack.State, error) {
	var ws wireState
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ws); err != nil {
		return rack.State{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return rack.State{}, fmt.Errorf("%w: trailing data after rack state", ErrMalformed)
	}
	if ws.Plugins == nil {
		return rack.State{}, fmt.Errorf("%w: missing \"plugins\"", ErrMalformed)
	}

	out := rack.State{Plugins: make([]rack.Record, 0, len(*ws.Plugins))}
	for i, wr := range *ws.Plugins {
		switch {
		case wr.X == nil:
			return rack.State{}, fmt.Errorf("%w: plugin %d: missing \"x\"", ErrMalformed, i)
		case wr.Y == nil:
			return rack.State{}, fmt.Errorf("%w: plugin %d: missing \"y\"", ErrMalformed, i)
		case wr.Selected == nil:
			return rack.State{}, fmt.Errorf("%w: plugin %d: missing \"selected\"", ErrMalformed, i)
		case wr.ID == nil:
			return rack.State{}, fmt.Errorf("%w: plugin %d: missing \"id\"", ErrMalformed, i)
		}
		out.Plugins = append(out.Plugins, rack.Record{
			X:        *wr.X,
			Y:        *wr.Y,
			Selected: *wr.Selected,
			ID:       *wr.ID,
		})
	}
	return out, nil
}
