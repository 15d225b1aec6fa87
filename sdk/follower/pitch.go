package follower

import "fmt"

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchName formats a MIDI note number as a scientific pitch name, with
// middle C (60) rendered as C4.
func PitchName(pitch uint8) string {
	octave := int(pitch)/12 - 1
	return fmt.Sprintf("%s%d", pitchClasses[pitch%12], octave)
}
