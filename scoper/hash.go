package scoper

import (
	"encoding/base64"
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"stylescope/config"
)

// Hash is deterministic scope hash. It is valid both as CSS class name
// fragment and as host identifier prefix.
type Hash string

func (h Hash) String() string {
	return string(h)
}

// NewHash digests enabled facets of the scope in fixed order: name, source
// text, source size and names of class and id selectors.
func NewHash(scope *Scope, cfg *config.HashConfig) Hash {
	// New256 only fails for oversized keys
	d, _ := blake2b.New256(nil)

	if cfg.UseScopeName {
		d.Write([]byte(scope.Name))
	}
	if cfg.UseCodeText {
		d.Write([]byte(scope.Source))
	}
	if cfg.UseCodeSize {
		var size [8]byte
		binary.LittleEndian.PutUint64(size[:], uint64(len(scope.Source)))
		d.Write(size[:])
	}
	if cfg.UseItemNames {
		// tags and parent references do not participate
		for _, sel := range scope.sheet.ClassSelectors() {
			d.Write([]byte(sel.Name))
		}
		for _, sel := range scope.sheet.IDSelectors() {
			d.Write([]byte(sel.Name))
		}
	}

	sum := d.Sum(nil)
	size := min(max(cfg.Length, 0), len(sum))
	return Hash(Sanitize(base64.RawURLEncoding.EncodeToString(sum[:size])))
}
