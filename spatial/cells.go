// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"fmt"

	"github.com/uber/h3-go/v4"
)

// MaxResolution is the finest H3 resolution exposed to map clients.
const MaxResolution = 9

// Cell returns the H3 cell containing p at the given resolution.
func (p Point) Cell(res int) (h3.Cell, error) {
	if res < 0 || res > MaxResolution {
		return 0, fmt.Errorf("resolution %d out of range [0, %d]", res, MaxResolution)
	}

	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), res)
	if err != nil {
		return 0, fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
	}

	return cell, nil
}

// Cluster aggregates the points that fall into the same H3 cell.
type Cluster struct {
	Cell   string `json:"cell"`
	Count  int    `json:"count"`
	Center Point  `json:"center"`
}

// ClusterPoints groups points by H3 cell at res. The cluster center is the mean
// of its members, which keeps markers on top of the data rather than on the
// hexagon centroid. Output preserves first-seen cell order.
func ClusterPoints(points []Point, res int) ([]*Cluster, error) {
	index := make(map[h3.Cell]*Cluster)
	order := make([]h3.Cell, 0)

	for _, p := range points {
		cell, err := p.Cell(res)
		if err != nil {
			return nil, err
		}

		c, ok := index[cell]
		if !ok {
			c = &Cluster{Cell: cell.String()}
			index[cell] = c
			order = append(order, cell)
		}

		c.Count++
		c.Center.Lat += p.Lat
		c.Center.Lng += p.Lng
	}

	clusters := make([]*Cluster, 0, len(order))
	for _, cell := range order {
		c := index[cell]
		c.Center.Lat /= float64(c.Count)
		c.Center.Lng /= float64(c.Count)
		clusters = append(clusters, c)
	}

	return clusters, nil
}
