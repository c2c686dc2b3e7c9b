package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"stepkit/framework"
	"stepkit/handmenu"
	"stepkit/rt"
	"stepkit/rt/sim"
)

func main() {
	var headless bool
	var mobile bool
	var hz int
	var frames uint64
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.BoolVar(&mobile, "mobile", false, "Simulate a standalone-headset platform.")
	flag.IntVar(&hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&frames, "frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.Parse()

	cfg := sim.Config{Title: "stepkit demo", Mobile: mobile}

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		runtime := sim.New(cfg)
		loop := newDemoLoop(runtime, frames)
		if err := loop.Run(ctx, hz); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := sim.RunWindow(cfg, func(runtime rt.Runtime) (func() error, func()) {
		loop := newDemoLoop(runtime, frames)
		frame := func() error {
			loop.AboutToWait()
			return nil
		}
		shutdown := func() { loop.CloseRequested("window closed") }
		return frame, shutdown
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newDemoLoop builds a loop hosting the radial menu over a small demo tree:
// a radio group of draw modes, a nested tools layer, and a close item.
func newDemoLoop(runtime rt.Runtime, maxFrames uint64) *framework.Loop {
	var loop *framework.Loop
	var frame uint64

	loop = framework.NewLoop(runtime, framework.Hooks{
		OnStep: func(token *rt.MainThreadToken) {
			frame++
			if maxFrames > 0 && frame >= maxFrames {
				loop.CloseRequested("frame limit reached")
			}
		},
	})

	log := runtime.Log()
	mode := func(name string) func() {
		return func() { log.Info("mode selected", "mode", name) }
	}

	tools := handmenu.NewLayer("Tools", 0,
		handmenu.NewItem("Ruler", nil, func() { log.Info("ruler") }, handmenu.Callback()),
		handmenu.NewItem("Marker", nil, func() { log.Info("marker") }, handmenu.Callback()),
		handmenu.NewItem("Back", nil, nil, handmenu.Back()),
	)

	root := handmenu.NewLayer("Root", 0,
		handmenu.NewItem("Solid", nil, mode("solid"), handmenu.Checked(1)),
		handmenu.NewItem("Wire", nil, mode("wire"), handmenu.Unchecked(1)),
		handmenu.NewItem("Points", nil, mode("points"), handmenu.Unchecked(1)),
		handmenu.NewItem("Close", nil, nil, handmenu.Close()),
	)
	root.AddChild(tools)

	menu := handmenu.NewHandMenuRadial(root)
	loop.Info().Send(framework.Add(menu, "hand_menu"))
	loop.Info().Send(framework.Add(&statusStepper{}, "status"))
	return loop
}

// statusStepper logs the lifecycle events the registry reports each frame.
type statusStepper struct {
	log rt.Logger
}

func (s *statusStepper) Initialize(id framework.StepperID, info *framework.Info) bool {
	s.log = info.Log()
	return true
}

func (s *statusStepper) Step(token *rt.MainThreadToken) {
	for _, ev := range token.EventReport() {
		if ev.Key == framework.EventKeyRunning || ev.Key == framework.EventKeyRemoved {
			s.log.Info("stepper lifecycle", "event", ev.Key, "id", ev.Origin)
		}
	}
}

func (s *statusStepper) Shutdown() {}
