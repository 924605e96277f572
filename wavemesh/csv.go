package wavemesh

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NumSoundingColumns is the number of columns of a sounding CSV record.
const NumSoundingColumns = 16

// ReadSoundings parses a CSV file of soundings.
//
// The first row is a header. Each following row has the columns latitude,
// longitude, elevation, instrument lat/lon/alt, lowest return lat/lon/elev,
// WGS-84 elevation, rh2, rh50, rh98, an RH waveform (ignored), a quoted
// comma-separated list of waveform values, and a quoted comma-separated
// list of segment lengths.
//
// Rows which cannot be parsed are skipped and reported in rowErrs. The
// returned err is only set if the CSV itself cannot be read.
func ReadSoundings(r io.Reader) (soundings []*Sounding, rowErrs []error, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, errors.Wrap(err, "read soundings")
	}
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				rowErrs = append(rowErrs, errors.Wrapf(err, "row %d", row))
				continue
			}
			return nil, nil, errors.Wrap(err, "read soundings")
		}
		s, err := parseSoundingRecord(record)
		if err != nil {
			rowErrs = append(rowErrs, errors.Wrapf(err, "row %d", row))
			continue
		}
		soundings = append(soundings, s)
	}
	return soundings, rowErrs, nil
}

func parseSoundingRecord(record []string) (*Sounding, error) {
	if len(record) < NumSoundingColumns {
		return nil, errors.Errorf("expected %d columns but got %d", NumSoundingColumns, len(record))
	}
	var nums [13]float64
	for i := range nums {
		x, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i)
		}
		nums[i] = x
	}
	values, err := parseFloatList(record[14])
	if err != nil {
		return nil, errors.Wrap(err, "waveform values")
	}
	lengths, err := parseIntList(record[15])
	if err != nil {
		return nil, errors.Wrap(err, "waveform lengths")
	}
	if len(values) != len(lengths) {
		return nil, errors.Wrapf(ErrProfileMismatch, "%d values, %d lengths",
			len(values), len(lengths))
	}
	return &Sounding{
		Lat:                nums[0],
		Lon:                nums[1],
		Elevation:          nums[2],
		InstrumentLat:      nums[3],
		InstrumentLon:      nums[4],
		InstrumentAlt:      nums[5],
		LowestLat:          nums[6],
		LowestLon:          nums[7],
		LowestElevation:    nums[8],
		ReferenceElevation: nums[9],
		RH2:                nums[10],
		RH50:               nums[11],
		RH98:               nums[12],
		Amplitudes:         values,
		HeightFractions:    HeightFractions(lengths),
	}, nil
}

func splitList(s string) []string {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseFloatList(s string) ([]float64, error) {
	parts := splitList(s)
	res := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}

func parseIntList(s string) ([]int, error) {
	parts := splitList(s)
	res := make([]int, len(parts))
	for i, p := range parts {
		x, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}

// LoadSoundings reads a sounding CSV file from disk.
func LoadSoundings(path string) (soundings []*Sounding, rowErrs []error, err error) {
	soundings, err = Load(path, func(r io.Reader) ([]*Sounding, error) {
		var res []*Sounding
		var err error
		res, rowErrs, err = ReadSoundings(r)
		return res, err
	})
	return
}
