package dailyrotate

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
)

func ExampleNew() {
	dir := "_logs/example/"
	defer os.RemoveAll(dir)

	l, _ := New(
		dir+"test.log",
		WithClock(clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))),
		WithLocation(time.UTC),
		WithMaxSize(10), // 10 bytes
	)
	logger := log.New(l, "", 0)

	logger.Printf("Hello, World!") // 14 bytes
	logger.Printf("Hello, World!") // 14 bytes
	l.Close()

	files, _ := os.ReadDir(dir)
	for _, file := range files {
		fmt.Println(file.Name())
	}

	// OUTPUT:
	// test.log
	// test.log.2024-05-01.1
	// test.log.2024-05-01.2
}

func ExampleDetectGranularity() {
	for _, pattern := range []string{".%Y-%m-%d", ".%Y-%m-%d-%H", "%Y-%U", ".log"} {
		g, _ := DetectGranularity(pattern, Calendar{})
		fmt.Println(pattern, g)
	}

	// OUTPUT:
	// .%Y-%m-%d daily
	// .%Y-%m-%d-%H hourly
	// %Y-%U weekly
	// .log invalid
}
