package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"magang-intel/internal/vacancies"
)

// ErrInvalidDataset is returned when the document is not a list of records.
var ErrInvalidDataset = errors.New("invalid dataset")

// Field names as written by the data pipeline, followed by their English
// aliases.
var (
	fieldID         = []string{"id_posisi", "positionId", "id"}
	fieldTitle      = []string{"posisi", "positionTitle", "title"}
	fieldCompany    = []string{"nama_perusahaan", "companyName", "company"}
	fieldProvince   = []string{"nama_provinsi", "provinceName", "province"}
	fieldCity       = []string{"nama_kabupaten", "cityName", "city"}
	fieldQuota      = []string{"jumlah_kuota", "quota"}
	fieldRegistered = []string{"jumlah_terdaftar", "registeredCount", "registered"}
	fieldRatio      = []string{"competition_ratio", "competitionRatio", "ratio"}
	fieldCategory   = []string{"kategori_posisi", "category"}
	fieldSkills     = []string{"skills_norm", "skills"}
)

// Decode parses a dataset document: a JSON array of records, or an object
// wrapping the array under "data". Bad field values degrade to zero values;
// entries that are not objects are skipped.
func Decode(raw []byte) ([]vacancies.Vacancy, error) {
	raw = bytes.TrimSpace(raw)
	if !gjson.ValidBytes(raw) {
		raw = nullNonFinite(raw)
		if !gjson.ValidBytes(raw) {
			return nil, fmt.Errorf("%w: malformed json", ErrInvalidDataset)
		}
	}
	doc := gjson.ParseBytes(raw)
	if doc.IsObject() {
		doc = doc.Get("data")
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of records", ErrInvalidDataset)
	}

	out := []vacancies.Vacancy{}
	doc.ForEach(func(_, rec gjson.Result) bool {
		if rec.IsObject() {
			out = append(out, decodeRecord(rec))
		}
		return true
	})
	return out, nil
}

func decodeRecord(rec gjson.Result) vacancies.Vacancy {
	return vacancies.Vacancy{
		PositionID:       text(field(rec, fieldID)),
		Title:            text(field(rec, fieldTitle)),
		Company:          text(field(rec, fieldCompany)),
		Province:         text(field(rec, fieldProvince)),
		City:             text(field(rec, fieldCity)),
		Quota:            integer(field(rec, fieldQuota)),
		Registered:       integer(field(rec, fieldRegistered)),
		CompetitionRatio: optionalFloat(field(rec, fieldRatio)),
		Category:         text(field(rec, fieldCategory)),
		Skills:           skillList(field(rec, fieldSkills)),
	}
}

// field returns the first of names present with a non-null value.
func field(rec gjson.Result, names []string) gjson.Result {
	for _, name := range names {
		v := rec.Get(name)
		if v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func text(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return strings.TrimSpace(v.Str)
	case gjson.Number:
		return v.Raw
	case gjson.True, gjson.False:
		return v.String()
	}
	return ""
}

func number(v gjson.Result) (float64, bool) {
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Num
	case gjson.String:
		s := strings.ReplaceAll(strings.TrimSpace(v.Str), ",", ".")
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func integer(v gjson.Result) int {
	f, ok := number(v)
	if !ok || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(math.Round(f))
}

func optionalFloat(v gjson.Result) *float64 {
	f, ok := number(v)
	if !ok {
		return nil
	}
	return &f
}

func skillList(v gjson.Result) []string {
	var parts []string
	switch {
	case v.IsArray():
		v.ForEach(func(_, s gjson.Result) bool {
			switch s.Type {
			case gjson.Null:
			case gjson.String:
				parts = append(parts, s.Str)
			default:
				parts = append(parts, s.String())
			}
			return true
		})
	case v.Type == gjson.String:
		parts = strings.Split(v.Str, ",")
	default:
		return nil
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// nullNonFinite rewrites the NaN, Infinity and -Infinity literals some JSON
// writers emit into null, leaving string contents alone.
func nullNonFinite(raw []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(raw))
	inString := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			out.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(raw) {
					i++
					out.WriteByte(raw[i])
				}
			case '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out.WriteByte(c)
			continue
		}
		matched := false
		for _, lit := range []string{"-Infinity", "Infinity", "NaN"} {
			if bytes.HasPrefix(raw[i:], []byte(lit)) {
				out.WriteString("null")
				i += len(lit) - 1
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}
