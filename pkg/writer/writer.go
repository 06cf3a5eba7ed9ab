// Package writer emits a packed module set in the output format (§4.6):
// one line per module, `<name> <x> <y> <width> <height>`, followed by a
// final `AREA <total>` line.
package writer

import (
	"fmt"
	"io"

	"github.com/floorkit/hbstar/pkg/module"
)

// Write emits every module in mods, sorted by name for determinism, then
// the total bounding-box area.
func Write(w io.Writer, mods *module.Set) error {
	all := mods.All()
	for _, m := range all {
		if _, err := fmt.Fprintf(w, "%s %d %d %d %d\n", m.Name, m.X, m.Y, m.EffectiveWidth(), m.EffectiveHeight()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "AREA %d\n", module.BoundingBoxArea(all))
	return err
}
