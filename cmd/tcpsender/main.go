package main

import (
	"bufio"
	"fmt"
	"hellotcp/internal/endpoint"
	"hellotcp/internal/logging"
	"io"
	"net"
	"os"
	"time"
)

// tcpsender sends each line typed on stdin over a fresh connection
// and prints whatever the server answers.
func main() {
	log := logging.New("info", os.Stderr)

	e, err := endpoint.FromArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("could not configure: %s", err)
	}

	rdr := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := rdr.ReadString('\n')
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Fatalf("could not read: %s", err)
		}

		if err := send(e.String(), line); err != nil {
			log.Error(err)
		}
	}
}

func send(addr, line string) error {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("could not dial: %w", err)
	}
	defer conn.Close()

	if _, err := io.WriteString(conn, line); err != nil {
		return fmt.Errorf("could not write: %w", err)
	}
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return err
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}
	fmt.Printf("%s\n", resp)
	return nil
}
