// Package loop orchestrates one visualized sorting run at a time.
//
// A Controller owns the dataset, the step emitter and the output
// side-channel (the tone generator). It moves between two states:
//
//	Idle --Start--> Running --completion/cancel--> Idle
//
// Start and Reset are refused while Running; a refused request is a no-op,
// not an error. The algorithm runs on its own goroutine and is the only
// writer of the dataset and the focus index; renderers and audio trackers
// poll Frame on their own cadence and only read.
package loop
