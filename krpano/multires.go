package krpano

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/Harold2017/dezoomer/vec2d"
)

// multiresLevel is one generated level described by a multires token:
// a size and, if the token carried its own "WxHxTILESIZE" suffix, an
// override tile size.
type multiresLevel struct {
	size     vec2d.Vec2d
	tileSize *uint32
}

// parseMultires decodes a krpano multires attribute of the form
// "TILESIZE,WxH[,WxHxTILESIZE]...". The leading TILESIZE
// token is the fallback tile size for any level token that doesn't carry
// its own. Individual malformed level tokens are skipped with a logged
// warning rather than failing the whole attribute; a malformed (or absent)
// leading token fails the whole attribute, since there is no fallback tile
// size to use.
func parseMultires(label, raw string) (uint32, []multiresLevel, error) {
	parts := strings.Split(raw, ",")
	if len(parts) == 0 {
		return 0, nil, fmt.Errorf("empty multires attribute")
	}
	baseTileSize, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return 0, nil, fmt.Errorf("multires leading tile size %q: %w", parts[0], err)
	}

	var levels []multiresLevel
	for _, tok := range parts[1:] {
		lvl, err := parseMultiresLevel(tok)
		if err != nil {
			log.Printf("krpano: %s: skipping unparseable multires level %q: %v", label, tok, err)
			continue
		}
		levels = append(levels, lvl)
	}
	return uint32(baseTileSize), levels, nil
}

// parseMultiresLevel parses one "WxH" or "WxHxTILESIZE" token.
func parseMultiresLevel(tok string) (multiresLevel, error) {
	fields := strings.Split(strings.TrimSpace(tok), "x")
	if len(fields) != 2 && len(fields) != 3 {
		return multiresLevel{}, fmt.Errorf("expected WxH or WxHxTILESIZE")
	}
	w, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return multiresLevel{}, fmt.Errorf("width: %w", err)
	}
	h, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return multiresLevel{}, fmt.Errorf("height: %w", err)
	}
	lvl := multiresLevel{size: vec2d.Vec2d{X: uint32(w), Y: uint32(h)}}
	if len(fields) == 3 {
		ts, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return multiresLevel{}, fmt.Errorf("tile size: %w", err)
		}
		tsVal := uint32(ts)
		lvl.tileSize = &tsVal
	}
	return lvl, nil
}
