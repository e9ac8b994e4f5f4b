package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bitgrain/bitgrain/console"
	"github.com/bitgrain/bitgrain/cpu"
)

func main() {
	var width uint
	var registers int
	var memory int
	var script string
	var dump bool
	var verbose bool

	flag.UintVar(&width, "w", 32, "Machine word width in bits")
	flag.IntVar(&registers, "r", 8, "Register count")
	flag.IntVar(&memory, "m", 256, "Memory size in cells")
	flag.StringVar(&script, "c", "", "Instruction script to execute")
	flag.BoolVar(&dump, "d", false, "Dump state after the script, do not enter the console")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	machine, err := cpu.New(width, registers, memory)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	machine.Verbose = verbose

	con := &console.Console{
		In:  os.Stdin,
		Out: os.Stdout,
		Cpu: machine,
	}

	if len(script) != 0 {
		inf, err := os.Open(script)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		defer inf.Close()

		if err = con.RunScript(inf); err != nil {
			log.Fatalf("%v: %v", script, err)
		}

		if dump {
			fmt.Print(machine.String())
			return
		}
	}

	if err = con.Run(); err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
