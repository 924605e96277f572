package wavemesh

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
)

const testSoundingCSV = `lat,lon,elev,inst_lat,inst_lon,inst_alt,low_lat,low_lon,low_elev,wgs84,rh2,rh50,rh98,rh_wave,values,lengths
-46.55,-71.45,350.5,-46.56,-71.44,420000,-46.5501,-71.4501,349,20.5,1.5,8.25,20,"[1,2]","[0.5, 6, 12.5, 3]","[1, 1, 2, 4]"
-46.54,-71.46,351,-46.56,-71.44,420000,-46.5401,-71.4601,350,20.5,1,2,3,"","1,2,3","[1,2]"
-46.53,oops,352,-46.56,-71.44,420000,-46.5301,-71.4601,351,20.5,1,2,3,"","1","1"
-46.52,-71.47,353
-46.51,-71.48,354,-46.56,-71.44,420000,-46.5101,-71.4801,353,20.5,1,2,30,"","7,8","2,2"
`

func TestReadSoundings(t *testing.T) {
	soundings, rowErrs, err := ReadSoundings(strings.NewReader(testSoundingCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(soundings) != 2 {
		t.Fatalf("expected 2 soundings but got %d", len(soundings))
	}
	if len(rowErrs) != 3 {
		t.Fatalf("expected 3 row errors but got %d: %v", len(rowErrs), rowErrs)
	}
	if errors.Cause(rowErrs[0]) != ErrProfileMismatch {
		t.Errorf("expected profile mismatch for row 2 but got %v", rowErrs[0])
	}

	s := soundings[0]
	expected := &Sounding{
		Lat:                -46.55,
		Lon:                -71.45,
		Elevation:          350.5,
		InstrumentLat:      -46.56,
		InstrumentLon:      -71.44,
		InstrumentAlt:      420000,
		LowestLat:          -46.5501,
		LowestLon:          -71.4501,
		LowestElevation:    349,
		ReferenceElevation: 20.5,
		RH2:                1.5,
		RH50:               8.25,
		RH98:               20,
		Amplitudes:         []float64{0.5, 6, 12.5, 3},
		HeightFractions:    []float64{0, 0.125, 0.25, 0.5},
	}
	if diff := cmp.Diff(expected, s, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("unexpected sounding (-want +got):\n%s", diff)
	}
	if err := s.Validate(); err != nil {
		t.Error(err)
	}

	if soundings[1].RH98 != 30 || len(soundings[1].Amplitudes) != 2 {
		t.Errorf("unexpected last sounding: %+v", soundings[1])
	}
}

func TestReadSoundingsEmpty(t *testing.T) {
	soundings, rowErrs, err := ReadSoundings(strings.NewReader(""))
	if err != nil || len(soundings) != 0 || len(rowErrs) != 0 {
		t.Errorf("unexpected result: %v %v %v", soundings, rowErrs, err)
	}
}

func TestSplitList(t *testing.T) {
	cases := map[string][]string{
		"[1, 2,3]": {"1", "2", "3"},
		" 4,5 ":    {"4", "5"},
		"[]":       nil,
		"":         nil,
	}
	for in, expected := range cases {
		if diff := cmp.Diff(expected, splitList(in)); diff != "" {
			t.Errorf("%q: unexpected parts (-want +got):\n%s", in, diff)
		}
	}
}
