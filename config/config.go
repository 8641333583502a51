// Package config holds the Odin32K emulator's runtime configuration
// surface: clock rate, RAM seeding, trace verbosity and the two boot-time
// switches. Fields are looked up by case-insensitive prefix, the same way
// the teacher's settings package resolves debugger variables, so a future
// "-set key=value" CLI flag can reuse the same machinery as Display.
package config

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/pkg/errors"
)

// RAMInit names how system RAM is seeded at boot.
type RAMInit string

const (
	RAMZero   RAMInit = "zero"
	RAMRandom RAMInit = "random"
)

// Settings holds the Odin32K's configuration surface. StepMode and
// WaitAtBegin are stored, settable and displayed, but cmd/poppyemu does
// not read them: its run loop never pauses.
type Settings struct {
	ClockHz     int64   `doc:"CPU clock rate in Hz used by the pacer"`
	RAMInit     RAMInit `doc:"system RAM seeding: zero or random"`
	Verbose     int     `doc:"trace verbosity: 0 silent .. 3 full bus log"`
	StepMode    bool    `doc:"pause for a keypress between instructions"`
	WaitAtBegin bool    `doc:"pause before executing the first instruction"`
}

// Default returns the Odin32K's out-of-the-box configuration.
func Default() *Settings {
	return &Settings{
		ClockHz:     4_000_000,
		RAMInit:     RAMZero,
		Verbose:     0,
		StepMode:    false,
		WaitAtBegin: false,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	t := reflect.TypeOf(Settings{})
	settingsFields = make([]settingsField, t.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := t.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

// Display writes a human-readable listing of every setting and its
// current value to w.
func (s *Settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var rendered string
		switch {
		case f.typ == reflect.TypeOf(RAMInit("")):
			rendered = fmt.Sprintf("    %-16s %s", f.name, v.String())
		case f.kind == reflect.Bool:
			rendered = fmt.Sprintf("    %-16s %v", f.name, v.Bool())
		default:
			rendered = fmt.Sprintf("    %-16s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-32s (%s)\n", rendered, f.doc)
	}
}

// Set assigns value to the field whose name key uniquely prefixes.
func (s *Settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return errors.Wrapf(err, "unknown setting %q", key)
	}

	vIn := reflect.ValueOf(value)
	if !vIn.Type().ConvertibleTo(f.typ) {
		return errors.Errorf("setting %q: cannot assign %T", key, value)
	}

	reflect.ValueOf(s).Elem().Field(f.index).Set(vIn.Convert(f.typ))
	return nil
}
