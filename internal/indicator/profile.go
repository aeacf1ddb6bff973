package indicator

import "b3vision/internal/model"

// DefaultProfileBins is the default bucket count for VolumeProfile.
const DefaultProfileBins = 20

// ProfileBucket is one equal-width price bucket with its accumulated volume.
type ProfileBucket struct {
	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`
	Volume   float64 `json:"volume"`
}

// Profile is the full volume-by-price histogram.
type Profile struct {
	Buckets     []ProfileBucket `json:"buckets"`
	POC         float64         `json:"poc"`
	TotalVolume float64         `json:"total_volume"`
}

// VolumeProfile partitions [min Low, max High] into bins equal-width
// buckets and accumulates each bar's volume into the bucket containing its
// typical price. A typical price at or above the top edge lands in the
// last bucket, so bucket volumes always sum exactly to the total volume.
// The Point of Control is the midpoint of the heaviest bucket.
func VolumeProfile(s *model.Series, bins int) *Profile {
	if bins <= 0 {
		bins = DefaultProfileBins
	}
	if s.Empty() {
		return &Profile{Buckets: []ProfileBucket{}}
	}

	priceMin, priceMax := s.Bars[0].Low, s.Bars[0].High
	for i := 1; i < s.Len(); i++ {
		if s.Bars[i].Low < priceMin {
			priceMin = s.Bars[i].Low
		}
		if s.Bars[i].High > priceMax {
			priceMax = s.Bars[i].High
		}
	}

	width := (priceMax - priceMin) / float64(bins)
	volumes := make([]float64, bins)
	var total float64
	for i := range s.Bars {
		bar := &s.Bars[i]
		idx := 0
		if width > 0 {
			idx = int((bar.TypicalPrice() - priceMin) / width)
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		volumes[idx] += float64(bar.Volume)
		total += float64(bar.Volume)
	}

	pocIdx := 0
	buckets := make([]ProfileBucket, bins)
	for i := 0; i < bins; i++ {
		buckets[i] = ProfileBucket{
			PriceMin: priceMin + width*float64(i),
			PriceMax: priceMin + width*float64(i+1),
			Volume:   volumes[i],
		}
		if volumes[i] > volumes[pocIdx] {
			pocIdx = i
		}
	}

	return &Profile{
		Buckets:     buckets,
		POC:         (buckets[pocIdx].PriceMin + buckets[pocIdx].PriceMax) / 2,
		TotalVolume: total,
	}
}
