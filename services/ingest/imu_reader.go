package ingest

import (
	"bufio"
	"context"
	"io"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"gesture-logger/models"
	"gesture-logger/utils"
)

// IMUReader turns the MCU's line stream into IMUSamples, or synthesises
// them in simulation mode. Samples are pushed into a buffered channel with
// non-blocking sends so a slow consumer never stalls the serial reads.
type IMUReader struct {
	src      io.Reader // nil in simulation mode
	rateHz   int
	rng      *rand.Rand
	Out      chan *models.IMUSample
	produced uint64
	dropped  uint64
	rejected uint64
}

// NewIMUReader reads lines from src.
func NewIMUReader(src io.Reader, buffer int) *IMUReader {
	if buffer <= 0 {
		buffer = 512
	}
	return &IMUReader{
		src: src,
		Out: make(chan *models.IMUSample, buffer),
	}
}

// NewSimulatedIMUReader emits synthetic samples at rateHz.
func NewSimulatedIMUReader(rateHz, buffer int, seed uint64) *IMUReader {
	r := NewIMUReader(nil, buffer)
	if rateHz <= 0 {
		rateHz = 100
	}
	r.rateHz = rateHz
	r.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return r
}

// Start launches the read loop; Out is closed when it ends.
func (r *IMUReader) Start(ctx context.Context) {
	if r.src == nil {
		go r.simulate(ctx)
		utils.L().Info("imu reader started     (simulate, rate=%dHz, buffer=%d)", r.rateHz, cap(r.Out))
		return
	}
	go r.run(ctx)
	utils.L().Info("imu reader started     (serial, buffer=%d)", cap(r.Out))
}

func (r *IMUReader) run(ctx context.Context) {
	defer close(r.Out)

	sc := bufio.NewScanner(r.src)
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := sc.Text()
		if line == "" {
			continue
		}
		s, err := models.ParseIMULine(line)
		if err != nil {
			atomic.AddUint64(&r.rejected, 1)
			utils.L().Debug("imu: rejected line %q: %v", line, err)
			continue
		}
		r.emit(s)
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		utils.L().Error("imu: read: %v", err)
	}
	r.logStopped()
}

func (r *IMUReader) simulate(ctx context.Context) {
	defer close(r.Out)

	ticker := time.NewTicker(time.Second / time.Duration(r.rateHz))
	defer ticker.Stop()

	var step float64
	for {
		select {
		case <-ctx.Done():
			r.logStopped()
			return
		case <-ticker.C:
			r.emit(r.synth(step))
			step += 0.05
		}
	}
}

// synth produces a wrist-like oscillation with a slowly turning orientation.
func (r *IMUReader) synth(step float64) *models.IMUSample {
	half := 0.1 * math.Sin(step/4)
	return &models.IMUSample{
		LinAcc: [3]float64{
			2.0*math.Sin(step) + r.rng.NormFloat64()*0.05,
			1.0*math.Cos(step) + r.rng.NormFloat64()*0.05,
			0.5*math.Sin(step*2) + r.rng.NormFloat64()*0.05,
		},
		Gyro: [3]float64{
			0.8*math.Cos(step) + r.rng.NormFloat64()*0.01,
			0.4*math.Sin(step) + r.rng.NormFloat64()*0.01,
			0.1 + r.rng.NormFloat64()*0.01,
		},
		Quat: [4]float64{math.Cos(half), 0, 0, math.Sin(half)},
	}
}

func (r *IMUReader) emit(s *models.IMUSample) {
	select {
	case r.Out <- s:
		atomic.AddUint64(&r.produced, 1)
	default:
		atomic.AddUint64(&r.dropped, 1)
		utils.L().Warn("imu: dropped sample (consumer too slow)")
	}
}

func (r *IMUReader) logStopped() {
	p, d, x := r.Stats()
	utils.L().Info("imu reader stopped     (produced=%d, dropped=%d, rejected=%d)", p, d, x)
}

// Stats returns (produced, dropped, rejected) counts atomically.
func (r *IMUReader) Stats() (uint64, uint64, uint64) {
	return atomic.LoadUint64(&r.produced), atomic.LoadUint64(&r.dropped), atomic.LoadUint64(&r.rejected)
}
