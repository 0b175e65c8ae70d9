// Package loader reads and parses a model source and materializes the result
// into a scene node. Load is safe to call off the UI goroutine; Materialize is cheap
// and runs on it.
package loader

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/philipparndt/meshview/internal/logging"
	"github.com/philipparndt/meshview/internal/source"
	"github.com/philipparndt/meshview/pkg/obj"
	"github.com/philipparndt/meshview/pkg/stl"
)

var (
	// ErrReadFailure wraps I/O errors while reading model files
	ErrReadFailure = errors.New("read failure")
	// ErrParseFailure wraps errors from the STL and OBJ parsers
	ErrParseFailure = errors.New("parse failure")
)

// Parsed is a decoded model that has not been turned into a scene node yet
type Parsed struct {
	Source source.Source
	Plan   source.Plan
	STL    *stl.Model
	OBJ    *obj.Model

	// Textures holds decoded, vertically flipped diffuse maps keyed by lower-case file name
	Textures map[string]image.Image
	// MissingTextures lists map_Kd references with no usable file in the set
	MissingTextures []string
}

// Name returns the model name for display
func (p *Parsed) Name() string {
	if p.STL != nil && p.STL.Name != "" {
		return p.STL.Name
	}
	return p.Plan.Model.Name
}

// Load detects the format of src, reads the files it needs and parses them
func Load(ctx context.Context, src source.Source) (*Parsed, error) {
	plan, err := src.Plan()
	if err != nil {
		return nil, err
	}
	return LoadPlan(ctx, src, plan)
}

// LoadPlan is Load for a source whose format was already detected
func LoadPlan(ctx context.Context, src source.Source, plan source.Plan) (*Parsed, error) {
	start := time.Now()
	log := logging.Logger().With("source", src.Name())

	data, err := plan.Model.Read(ctx)
	if err != nil {
		return nil, readError(err)
	}

	parsed := &Parsed{Source: src, Plan: plan, Textures: make(map[string]image.Image)}

	switch plan.Format {
	case source.FormatSTL:
		model, err := stl.ParseBytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, plan.Model.Name, err)
		}
		parsed.STL = model

	case source.FormatOBJ:
		var mtl []byte
		if plan.Material != nil {
			mtl, err = plan.Material.Read(ctx)
			if err != nil {
				return nil, readError(err)
			}
		}
		model, err := obj.Parse(data, mtl)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, plan.Model.Name, err)
		}
		parsed.OBJ = model

		if err := loadTextures(ctx, parsed); err != nil {
			return nil, err
		}
	}

	log.Debug("model parsed",
		"format", plan.Format.String(),
		"triangles", parsed.triangleCount(),
		"elapsed", time.Since(start))
	return parsed, nil
}

func readError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrReadFailure, err)
}

func (p *Parsed) triangleCount() int {
	switch {
	case p.STL != nil:
		return p.STL.TriangleCount()
	case p.OBJ != nil:
		return p.OBJ.TriangleCount()
	}
	return 0
}

// loadTextures resolves every map_Kd against the file set. A reference that cannot be
// found or decoded leaves the material untextured.
func loadTextures(ctx context.Context, p *Parsed) error {
	log := logging.Logger()
	for _, name := range p.OBJ.TextureNames() {
		key := strings.ToLower(name)
		f, ok := p.Plan.Lookup(name)
		if !ok {
			log.Debug("texture not in file set", "texture", name)
			p.MissingTextures = append(p.MissingTextures, name)
			continue
		}
		data, err := f.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Debug("texture unreadable", "texture", name, "err", err)
			p.MissingTextures = append(p.MissingTextures, name)
			continue
		}
		img, err := DecodeTexture(data)
		if err != nil {
			log.Debug("texture undecodable", "texture", name, "err", err)
			p.MissingTextures = append(p.MissingTextures, name)
			continue
		}
		p.Textures[key] = img
	}
	return nil
}
