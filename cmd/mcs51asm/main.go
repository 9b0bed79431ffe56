// mcs51asm turns a hand-assembled listing into an Intel HEX file the rest
// of this module can load. Input lines look like:
//
//	XXXX OP A1 A2 ...
//
// where XXXX is a four hex digit address and OP/A1/A2/... are hex byte
// values, one instruction (or raw data run) per line. This is the same
// input shape the teacher's hand_asm tool consumes, re-expressed as a
// native parser (no shelling out to egrep/sed) that writes Intel HEX
// records instead of a flat binary, since that's what cpu.Init/hexload
// expect.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

const bytesPerRecord = 16

func main() {
	app := &cli.App{
		Name:  "mcs51asm",
		Usage: "assemble a hand-written listing into Intel HEX",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true, Usage: "input listing path"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "output .hex path"},
		},
		Action: func(c *cli.Context) error {
			bytesByAddr, err := parseListing(c.String("in"))
			if err != nil {
				return err
			}
			return writeHex(c.String("out"), bytesByAddr)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("mcs51asm: %v", err)
	}
}

// parseListing reads the "ADDR OP A1 A2..." listing at path and returns a
// byte for each ROM address it assigns, keyed by absolute address.
func parseListing(path string) (map[uint16]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	out := map[uint16]byte{}
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		toks := strings.Fields(text)
		if len(toks) < 2 {
			return nil, fmt.Errorf("line %d: expected an address and at least one byte, got %q", line, text)
		}
		addr64, err := strconv.ParseUint(toks[0], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid address %q: %w", line, toks[0], err)
		}
		addr := uint16(addr64)
		for _, tok := range toks[1:] {
			b, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid byte %q: %w", line, tok, err)
			}
			out[addr] = byte(b)
			addr++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return out, nil
}

// writeHex emits out as Intel HEX data records of up to bytesPerRecord
// contiguous bytes each, followed by an end-of-file record. Non-contiguous
// gaps start a new record rather than padding with filler bytes.
func writeHex(path string, data map[uint16]byte) error {
	if len(data) == 0 {
		return fmt.Errorf("writeHex: no bytes to emit")
	}

	addrs := make([]uint16, 0, len(data))
	for a := range data {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	i := 0
	for i < len(addrs) {
		start := addrs[i]
		run := []byte{data[start]}
		j := i + 1
		for j < len(addrs) && int(addrs[j]-start) == len(run) && len(run) < bytesPerRecord {
			run = append(run, data[addrs[j]])
			j++
		}
		if err := writeRecord(w, start, run); err != nil {
			return err
		}
		i = j
	}
	if _, err := fmt.Fprintln(w, ":00000001FF"); err != nil {
		return err
	}
	return w.Flush()
}

func writeRecord(w *bufio.Writer, addr uint16, data []byte) error {
	sum := byte(len(data)) + byte(addr>>8) + byte(addr)
	for _, b := range data {
		sum += b
	}
	checksum := byte(-int8(sum))

	fmt.Fprintf(w, ":%02X%04X00", len(data), addr)
	for _, b := range data {
		fmt.Fprintf(w, "%02X", b)
	}
	_, err := fmt.Fprintf(w, "%02X\n", checksum)
	return err
}

