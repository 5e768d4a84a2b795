/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package scene composes textured overlays onto a house panorama, validates
// their placement on the roof, and keeps the renderer within its performance
// budget by shedding texture memory.
package scene

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/geometry"
	"github.com/roofscape/visualizer/pkg/monitor"
	"github.com/roofscape/visualizer/pkg/observability/logging"
	"github.com/roofscape/visualizer/pkg/observability/metrics"
	"github.com/roofscape/visualizer/pkg/scene/options"
	"github.com/roofscape/visualizer/pkg/texture"
)

var (
	// ErrNoRoofOutline is returned when products are placed before the roof is outlined
	ErrNoRoofOutline = errors.New("roof outline is not set")
	// ErrOutsideRoof is returned for footprints not contained in the roof outline
	ErrOutsideRoof = errors.New("product footprint is outside the roof outline")
	// ErrOverlap is returned for footprints whose bounds overlap a placed product
	ErrOverlap = errors.New("product footprint overlaps a placed product")
	// ErrDuplicateOverlay is returned when an overlay ID is already placed
	ErrDuplicateOverlay = errors.New("overlay is already placed")
	// ErrOverlayNotFound is returned for unknown overlay IDs
	ErrOverlayNotFound = errors.New("overlay not found")
)

// TextureLoader provides the textures the composer draws with
type TextureLoader interface {
	Load(ctx context.Context, key string) (*texture.ImageResource, error)
}

// Placement describes a product accepted onto the roof
type Placement struct {
	ID string
	// Footprint is the snapped footprint that was placed
	Footprint []geometry.Point2
	// Area is the sloped surface area covered by the product
	Area         float64
	PitchDegrees float64
	// Ratio is the pitch in N:12 notation
	Ratio  string
	Bounds *geometry.Box3
}

type placedProduct struct {
	overlay *RoofProductOverlay
	bounds  *geometry.Box3
	res     *texture.ImageResource
}

type placedLight struct {
	fixture *LightFixture
	res     *texture.ImageResource
}

// Composer holds the overlays of one scene
type Composer struct {
	opts     *options.Options
	textures TextureLoader
	monitor  *monitor.Monitor
	store    cache.Client
	logger   *logging.Logger

	mtx         sync.Mutex
	panoramaKey string
	panorama    *texture.ImageResource
	outline     []geometry.Point2
	products    map[string]*placedProduct
	lights      map[string]*placedLight
}

// NewComposer returns a Composer that loads textures from t, reports frames
// to m and saves scenes to store. m and store may be nil.
func NewComposer(o *options.Options, t TextureLoader, m *monitor.Monitor,
	store cache.Client, logger *logging.Logger) (*Composer, error) {
	if o == nil {
		o = options.New()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &Composer{
		opts:     o,
		textures: t,
		monitor:  m,
		store:    store,
		logger:   logging.OrNoop(logger),
		products: make(map[string]*placedProduct),
		lights:   make(map[string]*placedLight),
	}, nil
}

// SetPanorama loads the background image of the scene, replacing any previous one
func (c *Composer) SetPanorama(ctx context.Context, key string) error {
	res, err := c.textures.Load(ctx, key)
	if err != nil {
		return err
	}
	c.mtx.Lock()
	prev := c.panorama
	c.panorama = res
	c.panoramaKey = key
	c.mtx.Unlock()
	if prev != nil {
		prev.Release()
	}
	c.logger.Debug("panorama set", logging.Pairs{"key": key,
		"width": res.Width, "height": res.Height})
	return nil
}

// Panorama returns the key of the current background image
func (c *Composer) Panorama() string {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.panoramaKey
}

// SetRoofOutline sets the roof polygon products are placed within. Every
// product already placed must remain inside the new outline.
func (c *Composer) SetRoofOutline(outline []geometry.Point2) error {
	if !validFootprint(outline) {
		return ErrInvalidFootprint
	}
	outline = append([]geometry.Point2(nil), outline...)
	c.mtx.Lock()
	defer c.mtx.Unlock()
	for id, p := range c.products {
		if !geometry.PolygonContains(outline, p.overlay.Footprint) {
			return fmt.Errorf("%w: %s", ErrOutsideRoof, id)
		}
	}
	c.outline = outline
	return nil
}

// RoofOutline returns a copy of the roof polygon
func (c *Composer) RoofOutline() []geometry.Point2 {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return append([]geometry.Point2(nil), c.outline...)
}

// RoofArea returns the footprint area of the roof outline
func (c *Composer) RoofArea() float64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return geometry.PolygonArea(c.outline)
}

// snap returns the footprint with every vertex on the placement grid
func (c *Composer) snap(footprint []geometry.Point2) []geometry.Point2 {
	out := make([]geometry.Point2, len(footprint))
	for i, p := range footprint {
		v := geometry.SnapToGrid(p.Vec3(), c.opts.GridStep)
		out[i] = geometry.P2(v.X, v.Y)
	}
	return out
}

// checkPlacement returns an error if the footprint cannot be placed.
// c.mtx must be held.
func (c *Composer) checkPlacement(id string, footprint []geometry.Point2, bounds *geometry.Box3) error {
	if c.outline == nil {
		return ErrNoRoofOutline
	}
	if _, ok := c.products[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOverlay, id)
	}
	if !geometry.PolygonContains(c.outline, footprint) {
		return ErrOutsideRoof
	}
	for pid, p := range c.products {
		if bounds.Intersects(p.bounds) {
			return fmt.Errorf("%w: %s", ErrOverlap, pid)
		}
	}
	return nil
}

// PlaceProduct snaps the overlay's footprint to the placement grid, checks it
// lies within the roof outline without overlapping another product, loads its
// texture and adds it to the scene.
func (c *Composer) PlaceProduct(ctx context.Context, o *RoofProductOverlay) (*Placement, error) {
	if o == nil {
		return nil, ErrInvalidFootprint
	}
	ov := *o
	if err := ov.validate(); err != nil {
		return nil, err
	}
	ov.Footprint = c.snap(ov.Footprint)
	if !validFootprint(ov.Footprint) {
		return nil, ErrInvalidFootprint
	}
	bounds := geometry.BoundingBox2(ov.Footprint)

	// fail fast before paying for the texture
	c.mtx.Lock()
	err := c.checkPlacement(ov.ID, ov.Footprint, bounds)
	c.mtx.Unlock()
	if err != nil {
		return nil, err
	}

	res, err := c.textures.Load(ctx, ov.TextureKey)
	if err != nil {
		return nil, err
	}

	c.mtx.Lock()
	if err = c.checkPlacement(ov.ID, ov.Footprint, bounds); err != nil {
		c.mtx.Unlock()
		res.Release()
		return nil, err
	}
	c.products[ov.ID] = &placedProduct{overlay: &ov, bounds: bounds, res: res}
	n := len(c.products)
	c.mtx.Unlock()

	metrics.SceneOverlays.WithLabelValues("product").Set(float64(n))
	p := &Placement{
		ID:           ov.ID,
		Footprint:    append([]geometry.Point2(nil), ov.Footprint...),
		Area:         geometry.SlopedArea(ov.Footprint, ov.PitchDegrees),
		PitchDegrees: ov.PitchDegrees,
		Ratio:        geometry.PitchToRatio(ov.PitchDegrees),
		Bounds:       bounds,
	}
	c.logger.Debug("product placed", logging.Pairs{"id": p.ID, "texture": ov.TextureKey,
		"area": p.Area, "pitch": p.Ratio})
	return p, nil
}

// AddLight loads the light's texture and adds it to the scene
func (c *Composer) AddLight(ctx context.Context, f *LightFixture) (string, error) {
	if f == nil {
		return "", ErrMissingTextureKey
	}
	lf := *f
	if err := lf.validate(); err != nil {
		return "", err
	}
	res, err := c.textures.Load(ctx, lf.TextureKey)
	if err != nil {
		return "", err
	}
	c.mtx.Lock()
	if _, ok := c.lights[lf.ID]; ok {
		c.mtx.Unlock()
		res.Release()
		return "", fmt.Errorf("%w: %s", ErrDuplicateOverlay, lf.ID)
	}
	c.lights[lf.ID] = &placedLight{fixture: &lf, res: res}
	n := len(c.lights)
	c.mtx.Unlock()
	metrics.SceneOverlays.WithLabelValues("light").Set(float64(n))
	return lf.ID, nil
}

// RemoveOverlay removes the product or light with the id and releases its texture
func (c *Composer) RemoveOverlay(id string) error {
	var res *texture.ImageResource
	c.mtx.Lock()
	if p, ok := c.products[id]; ok {
		res = p.res
		delete(c.products, id)
		metrics.SceneOverlays.WithLabelValues("product").Set(float64(len(c.products)))
	} else if l, ok := c.lights[id]; ok {
		res = l.res
		delete(c.lights, id)
		metrics.SceneOverlays.WithLabelValues("light").Set(float64(len(c.lights)))
	}
	c.mtx.Unlock()
	if res == nil {
		return fmt.Errorf("%w: %s", ErrOverlayNotFound, id)
	}
	res.Release()
	return nil
}

// Products returns copies of the placed products, ordered by ID
func (c *Composer) Products() []RoofProductOverlay {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.productList()
}

// productList copies the placed products. c.mtx must be held.
func (c *Composer) productList() []RoofProductOverlay {
	out := make([]RoofProductOverlay, 0, len(c.products))
	for _, p := range c.products {
		o := *p.overlay
		o.Footprint = append([]geometry.Point2(nil), o.Footprint...)
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lights returns copies of the placed lights, ordered by ID
func (c *Composer) Lights() []LightFixture {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.lightList()
}

// lightList copies the placed lights. c.mtx must be held.
func (c *Composer) lightList() []LightFixture {
	out := make([]LightFixture, 0, len(c.lights))
	for _, l := range c.lights {
		out = append(out, *l.fixture)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LightIntensityAt returns the intensity of the light t into its animation
func (c *Composer) LightIntensityAt(id string, t time.Duration) (float64, error) {
	c.mtx.Lock()
	l, ok := c.lights[id]
	c.mtx.Unlock()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrOverlayNotFound, id)
	}
	return l.fixture.IntensityAt(t), nil
}

// textureCount is the number of texture handles the scene holds
func (c *Composer) textureCount() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	n := len(c.products) + len(c.lights)
	if c.panorama != nil {
		n++
	}
	return n
}

// Frame reports a rendered frame to the monitor and returns true when it
// produced a sample. A zero texture count is filled from the scene.
func (c *Composer) Frame(stats monitor.SceneStats) bool {
	if c.monitor == nil {
		return false
	}
	if stats.Textures == 0 {
		stats.Textures = c.textureCount()
	}
	return c.monitor.Tick(stats)
}

// Reset removes every overlay, the outline and the panorama
func (c *Composer) Reset() {
	c.mtx.Lock()
	held := make([]*texture.ImageResource, 0, len(c.products)+len(c.lights)+1)
	for _, p := range c.products {
		held = append(held, p.res)
	}
	for _, l := range c.lights {
		held = append(held, l.res)
	}
	if c.panorama != nil {
		held = append(held, c.panorama)
	}
	c.products = make(map[string]*placedProduct)
	c.lights = make(map[string]*placedLight)
	c.panorama = nil
	c.panoramaKey = ""
	c.outline = nil
	c.mtx.Unlock()
	for _, r := range held {
		r.Release()
	}
	metrics.SceneOverlays.WithLabelValues("product").Set(0)
	metrics.SceneOverlays.WithLabelValues("light").Set(0)
}
