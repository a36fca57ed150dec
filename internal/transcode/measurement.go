package transcode

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnparsableMeasurement is returned when the loudnorm analysis pass
// completes but its printed summary cannot be parsed. The caller treats it
// as a transcode failure for that item.
var ErrUnparsableMeasurement = errors.New("unparsable loudness measurement")

// Measurement is the intermediate result of the loudnorm analysis pass: the
// values the correction pass needs as filter parameters.
type Measurement struct {
	InputI      float64 // measured integrated loudness, LUFS
	InputTP     float64 // measured true peak, dBTP
	InputLRA    float64 // measured loudness range, LU
	InputThresh float64 // measured threshold, LUFS
	Offset      float64 // target offset, LU
}

// ParseMeasurement extracts the JSON summary block that ffmpeg prints at the
// end of a loudnorm analysis pass. Values arrive as quoted strings and may
// be "-inf" for digital silence, so they are converted with ParseFloat
// rather than decoded as JSON numbers.
func ParseMeasurement(output string) (Measurement, error) {
	start := strings.LastIndex(output, "{")
	end := strings.LastIndex(output, "}")
	if start == -1 || end < start {
		return Measurement{}, fmt.Errorf("%w: no summary block in ffmpeg output", ErrUnparsableMeasurement)
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(output[start:end+1]), &raw); err != nil {
		return Measurement{}, fmt.Errorf("%w: %v", ErrUnparsableMeasurement, err)
	}

	var m Measurement
	fields := []struct {
		key string
		dst *float64
	}{
		{"input_i", &m.InputI},
		{"input_tp", &m.InputTP},
		{"input_lra", &m.InputLRA},
		{"input_thresh", &m.InputThresh},
		{"target_offset", &m.Offset},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			return Measurement{}, fmt.Errorf("%w: missing %s", ErrUnparsableMeasurement, f.key)
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Measurement{}, fmt.Errorf("%w: bad %s value %q", ErrUnparsableMeasurement, f.key, v)
		}
		*f.dst = parsed
	}

	return m, nil
}
