package recommendation

import (
	"math"
	"sort"
	"strings"

	"agriconnect/internal/model"
)

const maxResults = 5

// Weights of the four sub-scores in the combined recommendation score.
const (
	distanceWeight  = 0.30
	qualityWeight   = 0.25
	priceWeight     = 0.25
	freshnessWeight = 0.20
)

type Recommendation struct {
	ProductID    string  `json:"productId"`
	Score        float64 `json:"score"`
	Reason       string  `json:"reason"`
	Savings      float64 `json:"savings,omitempty"`
	QualityBonus float64 `json:"qualityBonus,omitempty"`
}

// Rank scores candidates against a reference location and returns the
// top five by combined score. Category, when non-empty, restricts the
// candidate set; average prices are computed per category within that
// restricted set.
func Rank(products []model.Product, origin model.Location, category string) []Recommendation {
	candidates := products
	if category != "" {
		candidates = nil
		for _, p := range products {
			if string(p.Category) == category {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return []Recommendation{}
	}

	// Mean price per category within the candidate set. Every candidate
	// belongs to its own category subset, so counts are never zero.
	sums := map[model.Category]float64{}
	counts := map[model.Category]int{}
	for _, p := range candidates {
		sums[p.Category] += p.Price
		counts[p.Category]++
	}

	recs := make([]Recommendation, 0, len(candidates))
	for _, p := range candidates {
		avgPrice := sums[p.Category] / float64(counts[p.Category])

		distanceScore := math.Max(0, 100-2*haversineKm(origin.Lat, origin.Lng, p.Location.Lat, p.Location.Lng))
		qualityScore := (p.Quality.Rating / 5) * 100
		priceScore := 100.0
		if avgPrice > 0 {
			priceScore = math.Max(0, 100-((p.Price-avgPrice)/avgPrice)*100)
		}
		freshnessScore := float64(p.Quality.Freshness)

		totalScore := distanceScore*distanceWeight +
			qualityScore*qualityWeight +
			priceScore*priceWeight +
			freshnessScore*freshnessWeight

		var reason strings.Builder
		if distanceScore > 80 {
			reason.WriteString("Close to you. ")
		}
		if qualityScore > 85 {
			reason.WriteString("High quality rating. ")
		}
		if priceScore > 75 {
			reason.WriteString("Great price. ")
		}
		if freshnessScore > 90 {
			reason.WriteString("Very fresh. ")
		}
		reasonText := strings.TrimSpace(reason.String())
		if reasonText == "" {
			reasonText = "Good overall value."
		}

		rec := Recommendation{
			ProductID: p.ID,
			Score:     totalScore,
			Reason:    reasonText,
			Savings:   math.Max(0, avgPrice-p.Price),
		}
		if qualityScore > 85 {
			rec.QualityBonus = p.Quality.Rating
		}
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > maxResults {
		recs = recs[:maxResults]
	}
	return recs
}

// haversineKm is the great-circle distance between two points, with the
// Earth radius fixed at 6371 km.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371

	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
