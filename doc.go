/*
Package depot provides a bitmask-indexed Entity-Component-System (ECS) store.

Every component type registered with a World is assigned one bit. Each entity keeps its
components in a record keyed by those bits, together with the OR of the bits it holds, and the
World maintains a per-bit index of entity ids so that "which entities hold X, Y and Z" is an
intersection of a handful of sets.

Core Concepts:

  - Entity: An opaque, never reused id.
  - Component: Any Go value; its dynamic type is its component type.
  - Bits: A set of component flags. Single bits identify types, unions are query keys.
  - Processor: Logic registered against an ordered list of component types and a priority.

Basic Usage:

	world := depot.Factory.NewWorld()

	// Register every component before any processor
	position := depot.FactoryNewComponent[*Position]()
	velocity := depot.FactoryNewComponent[*Velocity]()
	posBit, _ := world.RegisterComponent(position)
	velBit, _ := world.RegisterComponent(velocity)

	id, _ := world.CreateEntity(&Position{}, &Velocity{X: 1})

	records, _ := world.Query(posBit.Or(velBit))
	for rec := range records {
		pos, _ := position.Get(rec)
		vel, _ := velocity.Get(rec)
		pos.X += vel.X
	}

	_ = world.RemoveComponents(id, velocity)

A World is not safe for concurrent use.
*/
package depot
