package depot

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type operation struct {
	typ        operationType
	entity     EntityID
	components []any
	types      []ComponentType
}

type operationType int

const (
	opCreate operationType = iota
	opDestroy
	opAddComponents
	opRemoveComponents
)

type opQueue struct {
	createOps      []operation
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[EntityID]struct{}
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[EntityID]struct{}),
	}
}

func (q *opQueue) empty() bool {
	return len(q.createOps) == 0 &&
		len(q.componentOps) == 0 &&
		len(q.destroyOps) == 0
}

func (q *opQueue) reset() {
	q.createOps = q.createOps[:0]
	q.componentOps = q.componentOps[:0]
	q.destroyOps = q.destroyOps[:0]
	clear(q.pendingDestroy)
}

func (q *opQueue) enqueueCreate(components []any) {
	q.createOps = append(q.createOps, operation{
		typ:        opCreate,
		components: components,
	})
}

func (q *opQueue) enqueueDestroy(id EntityID) {
	if _, exists := q.pendingDestroy[id]; exists {
		return
	}
	q.pendingDestroy[id] = struct{}{}
	q.destroyOps = append(q.destroyOps, operation{typ: opDestroy, entity: id})
}

func (q *opQueue) enqueueComponentOp(op operation) {
	// Entity is going away, component changes are moot
	if _, isDestroyed := q.pendingDestroy[op.entity]; isDestroyed {
		return
	}
	q.componentOps = append(q.componentOps, op)
}

// processOperationQueue applies creates, then component changes, then destroys.
// A failing operation does not stop the ones after it; every failure is joined into the result
// and the queue is emptied.
func (w *world) processOperationQueue() error {
	if w.opQueue.empty() {
		return nil
	}
	defer w.opQueue.reset()

	w.logger.Debug("applying deferred operations",
		zap.Int("creates", len(w.opQueue.createOps)),
		zap.Int("componentOps", len(w.opQueue.componentOps)),
		zap.Int("destroys", len(w.opQueue.destroyOps)),
	)

	var errs []error
	for _, op := range w.opQueue.createOps {
		if _, err := w.CreateEntity(op.components...); err != nil {
			errs = append(errs, fmt.Errorf("failed to process queued entity creation: %w", err))
		}
	}

	for _, op := range w.opQueue.componentOps {
		// Destroy may have been enqueued after the component op
		if _, isDestroyed := w.opQueue.pendingDestroy[op.entity]; isDestroyed {
			continue
		}
		switch op.typ {
		case opAddComponents:
			if err := w.AddComponents(op.entity, op.components...); err != nil {
				errs = append(errs, fmt.Errorf("failed to add queued components: %w", err))
			}
		case opRemoveComponents:
			if err := w.RemoveComponents(op.entity, op.types...); err != nil {
				errs = append(errs, fmt.Errorf("failed to remove queued components: %w", err))
			}
		}
	}

	for _, op := range w.opQueue.destroyOps {
		if err := w.RemoveEntity(op.entity); err != nil {
			errs = append(errs, fmt.Errorf("failed to destroy queued entity: %w", err))
		}
	}
	if len(errs) > 0 {
		w.logger.Debug("deferred operations failed", zap.Int("failures", len(errs)))
	}
	return errors.Join(errs...)
}

func (w *world) EnqueueCreateEntity(components ...any) error {
	if !w.Locked() {
		_, err := w.CreateEntity(components...)
		if err != nil {
			return fmt.Errorf("failed to create entity directly: %w", err)
		}
		return nil
	}
	w.opQueue.enqueueCreate(components)
	return nil
}

func (w *world) EnqueueRemoveEntity(id EntityID) error {
	if !w.Locked() {
		return w.RemoveEntity(id)
	}
	w.opQueue.enqueueDestroy(id)
	return nil
}

func (w *world) EnqueueAddComponents(id EntityID, components ...any) error {
	if !w.Locked() {
		return w.AddComponents(id, components...)
	}
	w.opQueue.enqueueComponentOp(operation{
		typ:        opAddComponents,
		entity:     id,
		components: components,
	})
	return nil
}

func (w *world) EnqueueRemoveComponents(id EntityID, types ...ComponentType) error {
	if !w.Locked() {
		return w.RemoveComponents(id, types...)
	}
	w.opQueue.enqueueComponentOp(operation{
		typ:    opRemoveComponents,
		entity: id,
		types:  types,
	})
	return nil
}
