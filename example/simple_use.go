package main

import (
	"fmt"

	"github.com/leandrodaf/scorefollow/internal/logger"
	"github.com/leandrodaf/scorefollow/sdk/contracts"
	"github.com/leandrodaf/scorefollow/sdk/follower"
)

func main() {
	log := logger.NewDevelopmentLogger()

	score, err := follower.NewScore([]contracts.Event{
		{Time: 0, Pitch: 60},
		{Time: 500, Pitch: 62},
		{Time: 1000, Pitch: 64},
	})
	if err != nil {
		log.Error("Failed to build the reference score")
		return
	}

	session, err := follower.NewSession(score,
		contracts.WithLogger(log),
		contracts.WithWindow(1),
	)
	if err != nil {
		log.Error("Failed to create the alignment session")
		return
	}

	// A slightly slow performance with one extra wrong note.
	performance := []contracts.Event{
		{Time: 0, Pitch: 60},
		{Time: 200, Pitch: 99},
		{Time: 530, Pitch: 62},
		{Time: 1060, Pitch: 64},
	}
	results, err := session.Feed(performance...)
	if err != nil {
		log.Error("Alignment failed")
		return
	}

	for _, result := range results {
		fmt.Printf("matched %s at %dms, tempo %.0f%%, %d ignored\n",
			follower.PitchName(score.At(result.ScoreIndex).Pitch),
			result.ReferenceTime,
			result.Stretch*100,
			len(result.Ignored))
	}
	fmt.Println("session phase:", session.Phase())
}
