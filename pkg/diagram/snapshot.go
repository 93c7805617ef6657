package diagram

import (
	"time"

	"github.com/bensonglobal/meridian/pkg/anim"
	"github.com/bensonglobal/meridian/pkg/errors"
)

// maxSnapshotTime bounds how far a snapshot may be stepped forward.
const maxSnapshotTime = 10 * time.Minute

// OrbitalAt mounts a throwaway orbital diagram at width x height, steps it
// to at in frame-sized increments and returns the frame.
func OrbitalAt(cfg OrbitalConfig, opts Options, width, height int, at time.Duration) (OrbitalFrame, error) {
	if err := checkAt(at); err != nil {
		return OrbitalFrame{}, err
	}
	s := anim.NewScheduler(anim.WithLogger(opts.Logger))
	o := NewOrbital(s, cfg, opts)
	if err := o.Mount(width, height); err != nil {
		return OrbitalFrame{}, err
	}
	defer o.Unmount()
	stepTo(s, at)
	return o.Frame()
}

// NetworkAt is [OrbitalAt] for the network map. A non-empty hovered selects
// that hub before the frame is taken.
func NetworkAt(cfg NetworkConfig, opts Options, width, height int, at time.Duration, hovered string) (NetworkFrame, error) {
	if err := checkAt(at); err != nil {
		return NetworkFrame{}, err
	}
	s := anim.NewScheduler(anim.WithLogger(opts.Logger))
	n := NewNetwork(s, cfg, opts)
	if err := n.Mount(width, height); err != nil {
		return NetworkFrame{}, err
	}
	defer n.Unmount()
	stepTo(s, at)
	if hovered != "" {
		if err := n.Enter(hovered); err != nil {
			return NetworkFrame{}, err
		}
	}
	return n.Frame()
}

func checkAt(at time.Duration) error {
	if at < 0 || at > maxSnapshotTime {
		return errors.New(errors.ErrCodeInvalidInput, "snapshot time must be in [0, %s], got %s", maxSnapshotTime, at)
	}
	return nil
}

func stepTo(s *anim.Scheduler, at time.Duration) {
	for s.Elapsed() < at {
		s.Step(min(anim.FrameInterval, at-s.Elapsed()))
	}
}
