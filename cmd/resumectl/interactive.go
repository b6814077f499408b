package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"sync"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resume-builder/internal/crop"
	"resume-builder/internal/shared/telemetry"
)

const (
	itemZoomIn  = "Zoom in"
	itemZoomOut = "Zoom out"
	itemZoomSet = "Set zoom"
	itemLeft    = "Move left"
	itemRight   = "Move right"
	itemUp      = "Move up"
	itemDown    = "Move down"
	itemApply   = "Apply"
	itemCancel  = "Cancel"
)

const defaultMoveStep = 10.0

var interactiveFlags struct {
	output  string
	preview string
	step    float64
	aspect  float64
	dataURI bool
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive <image>",
	Short: "Adjust a crop step by step and apply or cancel it",
	Args:  cobra.ExactArgs(1),
	RunE:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)

	interactiveCmd.Flags().StringVarP(&interactiveFlags.output, "output", "o", "profile.jpg", "output file")
	interactiveCmd.Flags().StringVarP(&interactiveFlags.preview, "preview", "p", "", "rewrite this JPEG after every change")
	interactiveCmd.Flags().Float64Var(&interactiveFlags.step, "step", defaultMoveStep, "pixels per move")
	interactiveCmd.Flags().Float64Var(&interactiveFlags.aspect, "aspect", 1, "requested aspect ratio")
	interactiveCmd.Flags().BoolVar(&interactiveFlags.dataURI, "data-uri", false, "write a data URI instead of raw JPEG")
}

type dialogResult struct {
	outcome crop.Outcome
	err     error
}

// view mirrors the session for the prompt goroutine; the dialog goroutine owns
// the session itself.
var view struct {
	mu   sync.Mutex
	zoom float64
}

func currentZoom() float64 {
	view.mu.Lock()
	defer view.mu.Unlock()
	return view.zoom
}

func runInteractive(_ *cobra.Command, args []string) error {
	s, err := loadSession(args[0], interactiveFlags.aspect)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	observe(s)
	events := make(chan crop.Event)
	done := make(chan dialogResult, 1)
	go func() {
		out, err := crop.Run(ctx, s, events, observe)
		done <- dialogResult{outcome: out, err: err}
	}()

	for {
		batch, err := nextEvents()
		if err != nil {
			close(events)
			<-done
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				fmt.Println("crop cancelled")
				return nil
			}
			return errors.Wrap(err, "prompt failed")
		}
		for _, ev := range batch {
			select {
			case events <- ev:
			case res := <-done:
				return finish(res)
			}
		}
		switch batch[len(batch)-1].(type) {
		case crop.Confirm, crop.Cancel:
			return finish(<-done)
		}
	}
}

// nextEvents asks for one action and translates it into dialog events. A move
// is a short drag: press, move by one step, release.
func nextEvents() ([]crop.Event, error) {
	zoom := currentZoom()
	menu := promptui.Select{
		Label: fmt.Sprintf("Zoom %d%%", int(math.Round(zoom*100))),
		Items: []string{itemZoomIn, itemZoomOut, itemZoomSet, itemLeft, itemRight, itemUp, itemDown, itemApply, itemCancel},
		Size:  9,
	}
	_, selected, err := menu.Run()
	if err != nil {
		return nil, err
	}

	step := interactiveFlags.step
	drag := func(dx, dy float64) []crop.Event {
		return []crop.Event{
			crop.PointerDown{At: crop.Point{}},
			crop.PointerMove{At: crop.Point{X: dx, Y: dy}},
			crop.PointerUp{},
		}
	}

	switch selected {
	case itemZoomIn:
		return []crop.Event{crop.Zoom{Value: zoom + crop.ZoomStep}}, nil
	case itemZoomOut:
		return []crop.Event{crop.Zoom{Value: zoom - crop.ZoomStep}}, nil
	case itemZoomSet:
		value, err := askZoom()
		if err != nil {
			return nil, err
		}
		return []crop.Event{crop.Zoom{Value: value}}, nil
	case itemLeft:
		return drag(-step, 0), nil
	case itemRight:
		return drag(step, 0), nil
	case itemUp:
		return drag(0, -step), nil
	case itemDown:
		return drag(0, step), nil
	case itemApply:
		return []crop.Event{crop.Confirm{}}, nil
	default:
		return []crop.Event{crop.Cancel{}}, nil
	}
}

func askZoom() (float64, error) {
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("Zoom (%.1f-%.1f)", crop.MinZoom, crop.MaxZoom),
		Validate: func(input string) error {
			if _, err := strconv.ParseFloat(input, 64); err != nil {
				return errors.New("not a number")
			}
			return nil
		},
	}
	raw, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(raw, 64)
}

// observe runs on the dialog goroutine after every visible change.
func observe(s *crop.Session) {
	view.mu.Lock()
	view.zoom = s.Zoom()
	view.mu.Unlock()

	pos := s.Position()
	telemetry.L().Debug("crop changed",
		zap.Int("zoom_percent", s.ZoomPercent()),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
	)
	if interactiveFlags.preview == "" {
		return
	}
	out, err := s.Confirm()
	if err != nil {
		return
	}
	if err := os.WriteFile(interactiveFlags.preview, out, 0o644); err != nil {
		telemetry.L().Warn("preview write failed", zap.Error(err))
	}
}

func finish(res dialogResult) error {
	if res.err != nil {
		return errors.Wrap(res.err, "crop dialog ended")
	}
	if !res.outcome.Confirmed() {
		fmt.Println("crop cancelled")
		return nil
	}
	if err := writeOutput(interactiveFlags.output, res.outcome.Image, interactiveFlags.dataURI); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", interactiveFlags.output, len(res.outcome.Image))
	return nil
}
