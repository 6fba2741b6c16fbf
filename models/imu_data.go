package models

import (
	"fmt"
	"strconv"
	"strings"
)

// IMUColumns is the number of values per serial line / CSV row.
const IMUColumns = 10

// IMUSample holds one reading streamed by the wristband MCU.
type IMUSample struct {
	LinAcc [3]float64 `json:"lin_acc"` // linear acceleration, m/s² (gravity removed)
	Gyro   [3]float64 `json:"gyro"`    // angular rate, rad/s
	Quat   [4]float64 `json:"quat"`    // orientation quaternion w, x, y, z
}

var _ CSVRowWriter = (*IMUSample)(nil)

func (IMUSample) CSVHeader() []string {
	return []string{
		"lin_acc_x", "lin_acc_y", "lin_acc_z",
		"gyro_x", "gyro_y", "gyro_z",
		"quat_w", "quat_x", "quat_y", "quat_z",
	}
}

func (s *IMUSample) CSVRow() []string {
	return []string{
		ftoa(s.LinAcc[0], 6), ftoa(s.LinAcc[1], 6), ftoa(s.LinAcc[2], 6),
		ftoa(s.Gyro[0], 6), ftoa(s.Gyro[1], 6), ftoa(s.Gyro[2], 6),
		ftoa(s.Quat[0], 6), ftoa(s.Quat[1], 6), ftoa(s.Quat[2], 6), ftoa(s.Quat[3], 6),
	}
}

// Values returns the sample in CSV column order.
func (s *IMUSample) Values() []float64 {
	return []float64{
		s.LinAcc[0], s.LinAcc[1], s.LinAcc[2],
		s.Gyro[0], s.Gyro[1], s.Gyro[2],
		s.Quat[0], s.Quat[1], s.Quat[2], s.Quat[3],
	}
}

// ParseIMULine decodes one "a,b,c,...\n" line of exactly IMUColumns floats.
func ParseIMULine(line string) (*IMUSample, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != IMUColumns {
		return nil, fmt.Errorf("imu line: %d fields, want %d", len(parts), IMUColumns)
	}
	var v [IMUColumns]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("imu line field %d: %w", i, err)
		}
		v[i] = f
	}
	return &IMUSample{
		LinAcc: [3]float64{v[0], v[1], v[2]},
		Gyro:   [3]float64{v[3], v[4], v[5]},
		Quat:   [4]float64{v[6], v[7], v[8], v[9]},
	}, nil
}
