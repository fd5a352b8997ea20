package jobs

import "deepresearch/types"

// MultiPublisher fans each lifecycle event out to every publisher. Nil
// entries are skipped; the first error is returned after all publishers
// have been tried.
type MultiPublisher []Publisher

func (mp MultiPublisher) Publish(event string, job types.Job) error {
	var firstErr error
	for _, p := range mp {
		if p == nil {
			continue
		}
		if err := p.Publish(event, job); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
