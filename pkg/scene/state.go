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

package scene

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/geometry"
	"github.com/roofscape/visualizer/pkg/observability/logging"
)

var (
	// ErrEmptyLeadID is returned when saving or loading without a lead identifier
	ErrEmptyLeadID = errors.New("lead id is required")
	// ErrNoStateStore is returned when the composer has no store to save to
	ErrNoStateStore = errors.New("scene state store is not configured")
	// ErrNoSavedState is returned when the lead has no saved scene
	ErrNoSavedState = errors.New("no saved scene for lead")
	// ErrCorruptState is returned for saved scenes that cannot be decoded
	ErrCorruptState = errors.New("saved scene is corrupt")
)

// State is the saved form of a scene
type State struct {
	LeadID      string               `json:"leadId"`
	Panorama    string               `json:"panorama,omitempty"`
	RoofOutline []geometry.Point2    `json:"roofOutline,omitempty"`
	Products    []RoofProductOverlay `json:"products,omitempty"`
	Lights      []LightFixture       `json:"lights,omitempty"`
	SavedAt     time.Time            `json:"savedAt"`
}

func (c *Composer) stateKey(leadID string) string {
	return c.opts.StateKeyPrefix + leadID
}

// Snapshot returns the current scene as a State, read in one critical section
func (c *Composer) Snapshot(leadID string) *State {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return &State{
		LeadID:      leadID,
		Panorama:    c.panoramaKey,
		RoofOutline: append([]geometry.Point2(nil), c.outline...),
		Products:    c.productList(),
		Lights:      c.lightList(),
		SavedAt:     time.Now().UTC(),
	}
}

// SaveState stores the current scene under the lead identifier
func (c *Composer) SaveState(leadID string) error {
	if leadID == "" {
		return ErrEmptyLeadID
	}
	if c.store == nil {
		return ErrNoStateStore
	}
	st := c.Snapshot(leadID)
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err = c.store.Store(c.stateKey(leadID), b); err != nil {
		return err
	}
	c.logger.Debug("scene saved", logging.Pairs{"leadID": leadID,
		"products": len(st.Products), "lights": len(st.Lights), "size": len(b)})
	return nil
}

// LoadState replaces the scene with the one saved under the lead identifier.
// Textures are reloaded and placements revalidated; if any step fails the
// scene is left empty.
func (c *Composer) LoadState(ctx context.Context, leadID string) error {
	if leadID == "" {
		return ErrEmptyLeadID
	}
	if c.store == nil {
		return ErrNoStateStore
	}
	b, _, err := c.store.Retrieve(c.stateKey(leadID))
	if errors.Is(err, cache.ErrKNF) {
		return fmt.Errorf("%w: %s", ErrNoSavedState, leadID)
	}
	if err != nil {
		return err
	}
	st := &State{}
	if err = json.Unmarshal(b, st); err != nil || st.LeadID != leadID {
		return fmt.Errorf("%w: %s", ErrCorruptState, leadID)
	}
	c.Reset()
	if err = c.apply(ctx, st); err != nil {
		c.Reset()
		return err
	}
	c.logger.Debug("scene loaded", logging.Pairs{"leadID": leadID,
		"products": len(st.Products), "lights": len(st.Lights)})
	return nil
}

// DeleteState removes the scene saved under the lead identifier
func (c *Composer) DeleteState(leadID string) error {
	if leadID == "" {
		return ErrEmptyLeadID
	}
	if c.store == nil {
		return ErrNoStateStore
	}
	return c.store.Remove(c.stateKey(leadID))
}

func (c *Composer) apply(ctx context.Context, st *State) error {
	if st.Panorama != "" {
		if err := c.SetPanorama(ctx, st.Panorama); err != nil {
			return err
		}
	}
	if len(st.RoofOutline) > 0 {
		if err := c.SetRoofOutline(st.RoofOutline); err != nil {
			return err
		}
	}
	for i := range st.Products {
		if _, err := c.PlaceProduct(ctx, &st.Products[i]); err != nil {
			return err
		}
	}
	for i := range st.Lights {
		if _, err := c.AddLight(ctx, &st.Lights[i]); err != nil {
			return err
		}
	}
	return nil
}
