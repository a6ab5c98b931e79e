package hdkey

import (
	"strconv"
	"strings"

	"github.com/elmeriniemela/bitcoinlib/keyerr"
)

const hardenedOffset = uint32(1) << 31

// step is one parsed path component: an index with the hardened bit
// already folded in.
type step struct {
	index uint32
}

// parsePath parses a path of the form "m/a1/a2/..." where each a_i is a
// non-negative integer optionally suffixed with h, H, or ' to mark
// hardening. The leading "m" is optional; when present it must be the
// sentinel for "start from this key" and no other letter is permitted in
// that position.
func parsePath(path string) ([]step, error) {
	if path == "" {
		return nil, keyerr.New(keyerr.InvalidPath, "empty path")
	}

	parts := strings.Split(path, "/")
	if parts[0] == "m" {
		parts = parts[1:]
	}

	steps := make([]step, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, keyerr.New(keyerr.InvalidPath, "empty path component")
		}
		s, err := parseStep(p)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func parseStep(p string) (step, error) {
	hardened := false
	numeric := p
	switch last := p[len(p)-1]; last {
	case 'h', 'H', '\'':
		hardened = true
		numeric = p[:len(p)-1]
	}
	if numeric == "" {
		return step{}, keyerr.Newf(keyerr.InvalidPath, "missing index in path component %q", p)
	}
	n, err := strconv.ParseUint(numeric, 10, 32)
	if err != nil {
		return step{}, keyerr.Newf(keyerr.InvalidPath, "invalid path index %q", p)
	}
	index := uint32(n)
	if index >= hardenedOffset {
		return step{}, keyerr.Newf(keyerr.InvalidPath, "path index %q already exceeds the hardened range", p)
	}
	if hardened {
		index += hardenedOffset
	}
	return step{index: index}, nil
}
