package music

// CurrentPitch is a mutable pitch cursor: a note within a scale and
// temperament, tracked as a modal index, an octave, and a frequency.
type CurrentPitch struct {
	t  *Temperament
	ks *KeySignature

	semitoneIndex int
	octave        int
	genericName   string
	freq          float64
}

// NewCurrentPitch positions a cursor at the given modal index and
// octave. A nil temperament defaults to equal temperament; a nil key
// signature defaults to C major, or to the chromatic mode when the
// temperament does not have 12 semitones.
func NewCurrentPitch(ks *KeySignature, t *Temperament, modalIndex, octave int) (*CurrentPitch, error) {
	if t == nil {
		var err error
		t, err = NewTemperament("equal")
		if err != nil {
			return nil, err
		}
	}
	if ks == nil {
		var err error
		if t.SemitonesPerOctave() == 12 {
			ks, err = NewKeySignature("c", "major")
		} else {
			ks, err = NewKeySignatureFromHalfSteps("n0", nil, t.SemitonesPerOctave())
		}
		if err != nil {
			return nil, err
		}
	}

	p := &CurrentPitch{
		t:             t,
		ks:            ks,
		semitoneIndex: modalIndex,
		octave:        octave,
	}
	p.genericName = t.NoteName(modalIndex)
	p.freq = t.FreqByModalIndexAndOctave(modalIndex, octave)
	return p, nil
}

// SemitoneTransposition moves the cursor by a number of half steps.
func (p *CurrentPitch) SemitoneTransposition(numberOfHalfSteps int) error {
	name, deltaOctave, err := p.ks.SemitoneTransform(p.genericName, numberOfHalfSteps)
	if err != nil {
		return err
	}
	return p.reposition(name, deltaOctave)
}

// ScalarTransposition moves the cursor by a number of scalar steps in
// the key signature's scale.
func (p *CurrentPitch) ScalarTransposition(numberOfScalarSteps int) error {
	name, deltaOctave, err := p.ks.ScalarTransform(p.genericName, numberOfScalarSteps)
	if err != nil {
		return err
	}
	return p.reposition(name, deltaOctave)
}

func (p *CurrentPitch) reposition(name string, deltaOctave int) error {
	generic, err := p.ks.ConvertToGenericNoteName(name)
	if err != nil {
		return err
	}
	i, err := p.t.ModalIndex(generic)
	if err != nil {
		return err
	}
	p.genericName = generic
	p.octave += deltaOctave
	p.semitoneIndex = i
	p.freq = p.t.FreqByModalIndexAndOctave(p.semitoneIndex, p.octave)
	return nil
}

// Freq returns the frequency of the current pitch in Hertz.
func (p *CurrentPitch) Freq() float64 { return p.freq }

// Octave returns the octave of the current pitch.
func (p *CurrentPitch) Octave() int { return p.octave }

// GenericName returns the generic note name of the current pitch.
func (p *CurrentPitch) GenericName() string { return p.genericName }

// SemitoneIndex returns the modal index of the current pitch within its
// octave.
func (p *CurrentPitch) SemitoneIndex() int { return p.semitoneIndex }
