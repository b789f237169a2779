// Command kitchen-timer drives a two-button countdown alarm clock: GPIO
// buttons in, serial display and indicator LED out, events to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/kitchen-timer/internal/display"
	"github.com/sweeney/kitchen-timer/internal/gpio"
	"github.com/sweeney/kitchen-timer/internal/logic"
	"github.com/sweeney/kitchen-timer/internal/mqtt"
	"github.com/sweeney/kitchen-timer/internal/queue"
	"github.com/sweeney/kitchen-timer/internal/status"
	"github.com/sweeney/kitchen-timer/internal/tick"
	"github.com/sweeney/kitchen-timer/internal/web"
)

func main() {
	pin1 := flag.Int("pin-button1", gpio.DefaultPinButton1, "BCM pin number for the select button")
	pin2 := flag.Int("pin-button2", gpio.DefaultPinButton2, "BCM pin number for the increment button")
	pinLED := flag.Int("pin-indicator", gpio.DefaultPinIndicator, "BCM pin number for the indicator LED")
	serialDev := flag.String("serial", "", "serial display device (empty writes frames to stdout)")
	baud := flag.Int("baud", display.DefaultBaud, "serial display baud rate")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", `MQTT broker address ("off" disables MQTT)`)
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	startAt := flag.String("clock", "12:12", "initial clock reading (H:MM)")

	flag.Parse()

	if err := run(*pin1, *pin2, *pinLED, *serialDev, *baud, *broker, *httpAddr, *startAt); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(pin1, pin2, pinLED int, serialDev string, baud int, broker, httpAddr, startAt string) error {
	start, err := parseClock(startAt)
	if err != nil {
		return fmt.Errorf("parse clock: %w", err)
	}

	// Initialize display
	var renderer display.Renderer
	if serialDev != "" {
		r, err := display.NewSerialRenderer(serialDev, baud)
		if err != nil {
			return fmt.Errorf("init display: %w", err)
		}
		renderer = r
	} else {
		renderer = display.NewWriterRenderer(os.Stdout)
	}
	defer renderer.Close()

	// Initialize GPIO. The button callback runs on the GPIO event goroutine;
	// it only stamps the press and enqueues it.
	clk := &tick.Counter{}
	q := queue.New()

	buttons, err := gpio.NewRealButtons(pin1, pin2, func(b logic.Button) {
		q.Push(logic.ButtonPress{Button: b, At: clk.Now()})
	})
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	indicator, err := gpio.NewRealIndicator(pinLED)
	if err != nil {
		return fmt.Errorf("init indicator: %w", err)
	}
	defer indicator.Close()

	// Initialize MQTT
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if broker != "off" {
		p := mqtt.NewRealPublisher(broker)
		defer p.Close()
		publisher = p
		mqttStatus = p
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:     tick.Period.Milliseconds(),
		DebounceMs: logic.DebounceTicks,
		Broker:     broker,
		HTTPAddr:   httpAddr,
		Serial:     serialDev,
	})

	if publisher != nil {
		startupEvent := mqtt.SystemEvent{
			Timestamp: time.Now(),
			Event:     "STARTUP",
			Retained:  true,
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	// Start the tick source
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go clk.Run(ctx, tick.Period)

	boot := clk.Now()
	ctl := logic.NewController(start, boot)
	deb := logic.NewDebouncer(boot)

	// First frame before the loop so the display never sits blank.
	if err := renderer.RenderTime(start); err != nil {
		log.Printf("render error: %v", err)
	}

	log.Printf("started: clock=%s pins=[%d %d %d] display=%s broker=%s",
		start, pin1, pin2, pinLED, displayName(serialDev), broker)

	ticker := time.NewTicker(tick.Period)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(clk, q, ctl, deb, renderer, indicator, publisher, mqttStatus, tracker, time.Now, ticker.C, sigCh)
}

func runLoop(clk *tick.Counter, q *queue.Queue, ctl *logic.Controller, deb *logic.Debouncer,
	renderer display.Renderer, indicator gpio.Indicator,
	publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker,
	now func() time.Time, loop <-chan time.Time, sig <-chan os.Signal) error {

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			if publisher != nil {
				event := mqtt.SystemEvent{
					Timestamp: now(),
					Event:     "SHUTDOWN",
					Reason:    signalName,
					Retained:  true,
				}
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil

		case <-loop:
			nowTick := clk.Now()

			// At most one press per iteration; a suppressed press is consumed
			// without reaching the controller.
			var press *logic.ButtonPress
			if p, ok := q.Pop(); ok {
				if deb.Accept(p) {
					press = &p
				} else {
					ctl.CountSuppressed()
				}
			}

			out := ctl.Step(nowTick, press)

			if out.Indicator != nil {
				if err := indicator.Set(*out.Indicator); err != nil {
					log.Printf("indicator error: %v", err)
				}
			}

			if out.Render != nil {
				if err := renderer.RenderTime(out.Render.Time); err != nil {
					log.Printf("render error: %v", err)
				}
			}

			for _, e := range out.Events {
				log.Printf("event: %s (state=%s clock=%s alarm=%s)", e.Type, e.State, e.Clock, e.Alarm)
				if publisher == nil {
					continue
				}
				pub := mqtt.Event{
					Timestamp: now(),
					Type:      e.Type,
					Clock:     e.Clock,
					Alarm:     e.Alarm,
					State:     e.State,
					Indicator: ctl.IndicatorOn(),
				}
				if err := publisher.Publish(pub); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			if tracker != nil {
				tracker.Update(ctl.ClockTime(), ctl.AlarmTime(), ctl.State(), ctl.IndicatorOn(), ctl.Counters(), q.Drops())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// parseClock parses a H:MM clock reading, e.g. "12:12" or "7:05".
func parseClock(s string) (logic.TimeOfDay, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%d:%d", &hh, &mm); err != nil {
		return logic.TimeOfDay{}, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return logic.TimeOfDay{}, fmt.Errorf("clock %q out of range", s)
	}
	return logic.TimeOfDay{HH: hh, MM: mm}, nil
}

func displayName(serialDev string) string {
	if serialDev == "" {
		return "stdout"
	}
	return serialDev
}
