// Package categories maps category numbers to their schemas.
package categories

import (
	"goasterix/internal/asterix"
	"goasterix/internal/asterix/cat001"
	"goasterix/internal/asterix/cat019"
	"goasterix/internal/asterix/cat020"
	"goasterix/internal/asterix/cat021"
	"goasterix/internal/asterix/cat034"
	"goasterix/internal/asterix/cat048"
	"goasterix/internal/asterix/cat062"
)

// Lookup returns the schema of a supported category.
func Lookup(category uint8) (*asterix.Schema, bool) {
	switch category {
	case 1:
		return cat001.Schema(), true
	case 19:
		return cat019.Schema(), true
	case 20:
		return cat020.Schema(), true
	case 21:
		return cat021.Schema(), true
	case 34:
		return cat034.Schema(), true
	case 48:
		return cat048.Schema(), true
	case 62:
		return cat062.Schema(), true
	default:
		return nil, false
	}
}

// All lists the supported schemas in category order.
func All() []*asterix.Schema {
	return []*asterix.Schema{
		cat001.Schema(),
		cat019.Schema(),
		cat020.Schema(),
		cat021.Schema(),
		cat034.Schema(),
		cat048.Schema(),
		cat062.Schema(),
	}
}
