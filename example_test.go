package libemit_test

import (
	"fmt"

	"github.com/sonirico/libemit"
)

func ExampleEmitter() {
	emitter := libemit.New[string, int]()

	_ = emitter.On("order.placed", func(amount int) {
		fmt.Println("placed:", amount)
	})
	_ = emitter.OnAny(func(name string, amount int) {
		fmt.Println("audit:", name, amount)
	})

	_ = emitter.Emit("order.placed", 42)

	// Output:
	// placed: 42
	// audit: order.placed 42
}

func ExampleEmitter_Subscribe() {
	emitter := libemit.New[string, string]()

	sub, _ := emitter.Subscribe("greet")

	_ = emitter.Emit("greet", "hello")
	_ = emitter.Emit("greet", "world")
	emitter.ClearAll()

	for v := range sub.Out() {
		fmt.Println(v)
	}

	// Output:
	// hello
	// world
}

func ExampleEmitter_Next() {
	emitter := libemit.New[string, int]()

	next, _ := emitter.Next("tick")
	_ = emitter.Emit("tick", 1)

	fmt.Println(<-next)

	// Output:
	// 1
}
