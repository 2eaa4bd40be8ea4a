// Package fixture reads local JSON fixture files standing in for real HTTP
// response bodies. Fixtures are named without extension; the fixed .json
// extension is appended on load. Bytes are passed through unmodified, no
// schema is imposed.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harborlab/netkit/internal/neterr"
)

// Ext is the fixed extension appended to fixture names.
const Ext = ".json"

// Load reads the fixture with the given extension-less name from root.
// An empty root resolves relative to the working directory. A fixture that
// cannot be read surfaces as a transport failure, structurally identical
// to any other "cannot be loaded" outcome.
func Load(name, root string) ([]byte, error) {
	if strings.ContainsAny(name, `/\`) {
		return nil, neterr.Transport(fmt.Errorf("fixture name %q must not contain path separators", name))
	}
	path := filepath.Clean(filepath.Join(root, name+Ext))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, neterr.Transport(err)
	}
	return data, nil
}
