package main

import (
	"log"
	"os"
	"time"

	"github.com/gounknown/dailyrotate"
)

// test "write: No space left on device": Write must return the error while
// rotation failures keep going to the error sink.
func main() {
	l, err := dailyrotate.New(
		"_logs/app.log",
		dailyrotate.WithDatePattern(".%Y-%m-%d-%H"),
		dailyrotate.WithMaxSize(64*1024*1024),
		dailyrotate.WithErrorSink(dailyrotate.ErrorSinkFunc(func(msg string, err error) {
			log.New(os.Stderr, "sink: ", log.LstdFlags).Printf("%s: %v", msg, err)
		})),
	)
	if err != nil {
		panic(err)
	}
	defer l.Close()

	data := make([]byte, 1024*1024) // 1 MB
	for {
		time.Sleep(time.Second)
		if _, err := l.Write(data); err != nil {
			log.Printf("write: %v", err)
		}
	}
}
