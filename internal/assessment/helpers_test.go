package assessment

func uniformIkigai(v int) AnswerMap {
	out := AnswerMap{}
	for _, q := range IkigaiQuestions() {
		out[q.ID] = v
	}
	return out
}

func uniformMBTI(v int) AnswerMap {
	out := AnswerMap{}
	for _, q := range MBTIQuestions() {
		out[q.ID] = v
	}
	return out
}

// polarMBTI answers every item so its effective score is high (5) or low (1).
func polarMBTI(high bool) AnswerMap {
	out := AnswerMap{}
	for _, q := range MBTIQuestions() {
		v := 1
		if high != q.Reverse {
			v = 5
		}
		out[q.ID] = v
	}
	return out
}
