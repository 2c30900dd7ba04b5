package server

// Voter identifies who is casting a vote: an authenticated user or an
// anonymous visitor carrying a persisted device token. Exactly one of the two
// ids is set; the constructors are the only way handlers build one.
type Voter struct {
	userID string
	anonID string
}

func AuthenticatedVoter(userID string) Voter {
	return Voter{userID: userID}
}

func AnonymousVoter(anonID string) Voter {
	return Voter{anonID: anonID}
}

func (v Voter) Authenticated() bool {
	return v.userID != ""
}

func (v Voter) valid() bool {
	return (v.userID != "") != (v.anonID != "")
}

// ids returns the nullable column values for the votes table.
func (v Voter) ids() (userID, anonID *string) {
	if v.userID != "" {
		return &v.userID, nil
	}
	if v.anonID != "" {
		return nil, &v.anonID
	}
	return nil, nil
}
