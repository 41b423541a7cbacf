package combat

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SweepOptions настраивает перебор пар снаряд × цель
type SweepOptions struct {
	// StopOnContact — снаряд расходуется при первом касании (Effective или Ineffective)
	StopOnContact bool
	// Parallel — снаряды проверяются параллельно; урон по одной цели
	// применяется строго последовательно
	Parallel bool
	// MaxWorkers ограничивает число горутин при Parallel (0 — без ограничения)
	MaxWorkers int
}

// Contact — результат касания снаряда shots[ShotIndex] с целью actors[ActorIndex]
type Contact struct {
	ShotIndex  int
	ActorIndex int
	Result     HitResult
}

// Sweep проверяет каждый снаряд против каждой цели, создавая для каждого
// снаряда свой HitArbiter. Промахи не попадают в результат. Порядок
// результата одинаков для последовательного и параллельного режимов:
// по индексу снаряда, затем по индексу цели.
func Sweep(ctx context.Context, shots []Damaging, actors []Damageable, opts SweepOptions) ([]Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	perShot := make([][]Contact, len(shots))
	var locks []sync.Mutex
	if opts.Parallel {
		locks = make([]sync.Mutex, len(actors))
	}

	evaluate := func(ctx context.Context, i int) error {
		arbiter, err := NewHitArbiter(shots[i])
		if err != nil {
			return fmt.Errorf("снаряд %d: %w", i, err)
		}

		for j, actor := range actors {
			if err := ctx.Err(); err != nil {
				return err
			}

			var result HitResult
			if locks != nil {
				// Два снаряда по одной цели за тик не должны терять обновление здоровья
				locks[j].Lock()
				result = arbiter.AttemptToHit(actor)
				locks[j].Unlock()
			} else {
				result = arbiter.AttemptToHit(actor)
			}

			if result == Miss {
				continue
			}
			perShot[i] = append(perShot[i], Contact{ShotIndex: i, ActorIndex: j, Result: result})
			if opts.StopOnContact {
				break
			}
		}
		return nil
	}

	if opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		if opts.MaxWorkers > 0 {
			g.SetLimit(opts.MaxWorkers)
		}
		for i := range shots {
			g.Go(func() error {
				return evaluate(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range shots {
			if err := evaluate(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	var contacts []Contact
	for _, cs := range perShot {
		contacts = append(contacts, cs...)
	}
	return contacts, nil
}
