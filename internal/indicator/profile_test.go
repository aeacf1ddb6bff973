package indicator

import (
	"math"
	"testing"

	"b3vision/internal/model"
)

func TestVolumeProfile_VolumeConserved(t *testing.T) {
	closes := []float64{10, 12, 15, 11, 14, 13, 16, 10.5, 12.5, 15.5}
	s := flatSeries(closes, 1000)
	p := VolumeProfile(s, 5)

	if len(p.Buckets) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(p.Buckets))
	}
	var sum float64
	for _, b := range p.Buckets {
		sum += b.Volume
	}
	if math.Abs(sum-p.TotalVolume) > 1e-9 {
		t.Errorf("bucket volumes sum %.0f != total %.0f", sum, p.TotalVolume)
	}
	if p.TotalVolume != 10000 {
		t.Errorf("expected total volume 10000, got %.0f", p.TotalVolume)
	}
}

func TestVolumeProfile_TopEdgeClamped(t *testing.T) {
	// second bar's typical price sits exactly at the top edge of the range
	bars := []model.Bar{
		{Open: 10, High: 10, Low: 10, Close: 10, Volume: 100},
		{Open: 12, High: 12, Low: 12, Close: 12, Volume: 500},
	}
	s := &model.Series{Ticker: "TEST4", Bars: bars}
	p := VolumeProfile(s, 4)

	last := p.Buckets[len(p.Buckets)-1]
	var sum float64
	for _, b := range p.Buckets {
		sum += b.Volume
	}
	if sum != 600 {
		t.Errorf("expected all volume binned, got %.0f", sum)
	}
	if last.Volume != 500 {
		t.Errorf("expected top-edge volume in the last bucket, got %.0f", last.Volume)
	}
}

func TestVolumeProfile_POCIsHeaviestBucketMidpoint(t *testing.T) {
	// all volume concentrated near 10, one outlier at 20
	closes := []float64{10, 10.1, 10.2, 9.9, 20}
	s := flatSeries(closes, 1000)
	p := VolumeProfile(s, 10)

	heaviest := p.Buckets[0]
	for _, b := range p.Buckets {
		if b.Volume > heaviest.Volume {
			heaviest = b
		}
	}
	want := (heaviest.PriceMin + heaviest.PriceMax) / 2
	if math.Abs(p.POC-want) > 1e-9 {
		t.Errorf("expected poc=%.4f, got %.4f", want, p.POC)
	}
}

func TestVolumeProfile_Empty(t *testing.T) {
	p := VolumeProfile(&model.Series{Ticker: "TEST4"}, 20)
	if len(p.Buckets) != 0 || p.TotalVolume != 0 {
		t.Errorf("expected empty profile, got %+v", p)
	}
}

func TestVolumeProfile_DefaultBins(t *testing.T) {
	s := flatSeries([]float64{10, 11, 12}, 100)
	p := VolumeProfile(s, 0)
	if len(p.Buckets) != DefaultProfileBins {
		t.Errorf("expected %d buckets for bins<=0, got %d", DefaultProfileBins, len(p.Buckets))
	}
}
