// Command rigctl is an interactive shell for driving the motor rig
// from a host machine over a serial port.
package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/asamhwustl/DeathRayCode/host/rig"
	"github.com/asamhwustl/DeathRayCode/host/serial"
	"github.com/asamhwustl/DeathRayCode/protocol"
)

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	device   string
	evalOnly bool
)

func init() {
	flag.StringVar(&device, "device", "", "Serial device of the rig (e.g. /dev/ttyACM0).")
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// Shell holds the connection state shared by the commands.
type Shell struct {
	Shell *ishell.Shell

	port   serial.Port
	motors [3]*rig.Motor
}

// New creates a new shell with all commands registered.
func New() *Shell {
	s := &Shell{Shell: ishell.New()}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps a command func that requires an open port.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).port == nil {
			c.Err(fmt.Errorf("not connected, use: connect DEVICE"))
			return
		}
		fn(c)
	}
}

// Connect opens the rig's serial port and builds one Motor per axis.
func (s *Shell) Connect(dev string) error {
	port, err := serial.Open(serial.DefaultConfig(dev))
	if err != nil {
		return err
	}
	if s.port != nil {
		s.port.Close()
	}
	s.port = port
	for axis := protocol.AxisX; axis <= protocol.AxisZ; axis++ {
		s.motors[axis] = rig.NewMotor(axis, port)
	}
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", dev))
	return nil
}

// Disconnect closes the current port.
func (s *Shell) Disconnect() {
	if s.port != nil {
		s.port.Close()
		s.port = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Motor resolves an axis argument ("x", "y", "z") to its Motor.
func (s *Shell) Motor(arg string) (*rig.Motor, error) {
	switch arg {
	case "x", "X":
		return s.motors[protocol.AxisX], nil
	case "y", "Y":
		return s.motors[protocol.AxisY], nil
	case "z", "Z":
		return s.motors[protocol.AxisZ], nil
	}
	return nil, fmt.Errorf("unknown axis %q, use x, y or z", arg)
}

// parseDirection maps "+" / "-" to the wire direction flag.
func parseDirection(arg string) (negative bool, err error) {
	switch arg {
	case "+":
		return false, nil
	case "-":
		return true, nil
	}
	return false, fmt.Errorf("unknown direction %q, use + or -", arg)
}

// parseUnit maps an optional unit argument, defaulting to inches.
func parseUnit(args []string) (rig.Unit, error) {
	if len(args) == 0 {
		return rig.Inches, nil
	}
	switch args[0] {
	case "in":
		return rig.Inches, nil
	case "cm":
		return rig.Centimeters, nil
	case "mm":
		return rig.Millimeters, nil
	}
	return "", fmt.Errorf("unknown unit %q, use in, cm or mm", args[0])
}

var commands = []*ishell.Cmd{
	{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "DEVICE",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("usage: connect DEVICE"))
				return
			}
			if err := ShellFrom(c).Connect(c.Args[0]); err != nil {
				c.Err(err)
			}
		},
	},
	{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	},
	{
		Name: "move",
		Help: "AXIS +|- DISTANCE [in|cm|mm]",
		Func: MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 3 {
				c.Err(fmt.Errorf("usage: move AXIS +|- DISTANCE [in|cm|mm]"))
				return
			}
			s := ShellFrom(c)
			motor, err := s.Motor(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			negative, err := parseDirection(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			distance, err := strconv.ParseFloat(c.Args[2], 64)
			if err != nil {
				c.Err(fmt.Errorf("bad distance %q: %w", c.Args[2], err))
				return
			}
			unit, err := parseUnit(c.Args[3:])
			if err != nil {
				c.Err(err)
				return
			}
			if err := motor.Move(negative, distance, unit); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		}),
	},
	{
		Name: "tolimit",
		Help: "AXIS +|-",
		Func: MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) != 2 {
				c.Err(fmt.Errorf("usage: tolimit AXIS +|-"))
				return
			}
			s := ShellFrom(c)
			motor, err := s.Motor(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			negative, err := parseDirection(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			if err := motor.ToLimit(negative); err != nil {
				c.Err(err)
				return
			}
			pos, _ := motor.Position()
			c.Printf("OK, homed at %.3f in\n", pos)
		}),
	},
	{
		Name: "moveto",
		Help: "AXIS POSITION [in|cm|mm]",
		Func: MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("usage: moveto AXIS POSITION [in|cm|mm]"))
				return
			}
			s := ShellFrom(c)
			motor, err := s.Motor(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			target, err := strconv.ParseFloat(c.Args[1], 64)
			if err != nil {
				c.Err(fmt.Errorf("bad position %q: %w", c.Args[1], err))
				return
			}
			unit, err := parseUnit(c.Args[2:])
			if err != nil {
				c.Err(err)
				return
			}
			if err := motor.MoveTo(target, unit); err != nil {
				c.Err(err)
				return
			}
			pos, _ := motor.Position()
			c.Printf("OK, at %.3f in\n", pos)
		}),
	},
	{
		Name: "remote",
		Help: "report whether the joystick was used since the last query",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			// The flag is rig-wide; any motor can carry the query.
			used, err := s.motors[protocol.AxisX].RemoteUsed()
			if err != nil {
				c.Err(err)
				return
			}
			if used {
				c.Println("remote was used")
			} else {
				c.Println("remote not used")
			}
		}),
	},
	{
		Name: "pos",
		Help: "print tracked positions",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			for _, motor := range s.motors {
				pos, known := motor.Position()
				if known {
					c.Printf("%s: %.3f in\n", motor.Axis(), pos)
				} else {
					c.Printf("%s: unknown\n", motor.Axis())
				}
			}
		}),
	},
}

func main() {
	flag.Parse()
	defer glog.Flush()

	s := New()
	if device != "" {
		if err := s.Connect(device); err != nil {
			glog.Exitf("connect %q failed: %v", device, err)
		}
	}

	if args := flag.Args(); len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			glog.Exitln(err)
		}
		return
	}
	if evalOnly {
		glog.Exitln("command expected")
	}
	s.Shell.Run()
	s.Disconnect()
}
