package depot_test

import (
	"fmt"

	"github.com/TheBitDrifter/depot"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Name is a simple component for entity identification
type Name struct {
	Value string
}

// Example shows basic depot usage with entity creation and bitmask queries
func Example_basic() {
	world := depot.Factory.NewWorld()

	// Define and register components
	position := depot.FactoryNewComponent[*Position]()
	velocity := depot.FactoryNewComponent[*Velocity]()
	name := depot.FactoryNewComponent[*Name]()
	posBit, _ := world.RegisterComponent(position)
	velBit, _ := world.RegisterComponent(velocity)
	world.RegisterComponent(name)

	// Create entities
	for i := 0; i < 5; i++ {
		world.CreateEntity(&Position{})
	}
	for i := 0; i < 3; i++ {
		world.CreateEntity(&Position{}, &Velocity{X: 1})
	}
	player, _ := world.CreateEntity(
		&Position{X: 10, Y: 20},
		&Velocity{X: 1, Y: 2},
		&Name{Value: "Player"},
	)

	// Query for all entities with position and velocity
	records, _ := world.Query(posBit.Or(velBit))
	matchCount := 0
	for rec := range records {
		pos, _ := position.Get(rec)
		vel, _ := velocity.Get(rec)
		pos.X += vel.X
		pos.Y += vel.Y
		matchCount++
	}
	fmt.Printf("Found %d entities with position and velocity\n", matchCount)

	nme, _ := name.GetFromEntity(world, player)
	pos, _ := position.GetFromEntity(world, player)
	fmt.Printf("%s is at (%.1f, %.1f)\n", nme.Value, pos.X, pos.Y)

	// Output:
	// Found 4 entities with position and velocity
	// Player is at (11.0, 22.0)
}

type movement struct {
	world depot.World
}

func (m *movement) Process(id depot.EntityID, components ...any) error {
	pos := components[0].(*Position)
	vel := components[1].(*Velocity)
	pos.X += vel.X
	pos.Y += vel.Y
	return nil
}

// Example_processor shows registering a processor and running dispatch passes
func Example_processor() {
	world := depot.Factory.NewWorld()
	position := depot.FactoryNewComponent[*Position]()
	velocity := depot.FactoryNewComponent[*Velocity]()
	world.RegisterComponent(position)
	world.RegisterComponent(velocity)

	id, _ := world.CreateEntity(&Position{}, &Velocity{X: 2, Y: 1})
	world.CreateEntity(&Position{X: 100})

	world.RegisterProcessor(func(w depot.World) depot.Processor {
		return &movement{world: w}
	}, 0, position, velocity)

	for i := 0; i < 3; i++ {
		world.Process()
	}

	pos, _ := position.GetFromEntity(world, id)
	fmt.Printf("Moved to (%.1f, %.1f)\n", pos.X, pos.Y)
	fmt.Println(len(world.Processors()), "processor registered")

	// Output:
	// Moved to (6.0, 3.0)
	// 1 processor registered
}

// Example_filter shows composite queries with And/Or/Not
func Example_filter() {
	world := depot.Factory.NewWorld()
	position := depot.FactoryNewComponent[Position]()
	velocity := depot.FactoryNewComponent[Velocity]()
	name := depot.FactoryNewComponent[Name]()
	world.RegisterComponent(position)
	world.RegisterComponent(velocity)
	world.RegisterComponent(name)

	world.CreateEntity(Position{}, Name{Value: "statue"})
	world.CreateEntity(Position{}, Velocity{}, Name{Value: "runner"})
	world.CreateEntity(Position{}, Velocity{})

	query := depot.Factory.NewQuery()
	node := query.And(position, name, query.Not(velocity))
	for rec := range world.Filter(node) {
		n, _ := name.Get(rec)
		fmt.Println(rec.ID(), n.Value)
	}

	// Output:
	// 0 statue
}
