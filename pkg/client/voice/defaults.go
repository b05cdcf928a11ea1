package voice

// DefaultKeywordFiles are the key phrase list and its dictionary
var DefaultKeywordFiles = []KeywordFile{
	{Folder: "/", Name: "kws.txt", URL: "../kws.txt"},
	{Folder: "/", Name: "kws.dict", URL: "../kws.dict"},
}

// DefaultInitializeArgs point keyword spotting at DefaultKeywordFiles
var DefaultInitializeArgs = [][2]string{
	{"-kws", "kws.txt"},
	{"-dict", "kws.dict"},
}

var DefaultWords = []Word{
	{Word: "ACTION", Pronunciation: "AE K SH AH N"},
	{Word: "ONE", Pronunciation: "W AH N"},
	{Word: "TORCH", Pronunciation: "T AO R CH"},
}

var DefaultGrammars = []Grammar{
	{
		Title:     "Commands",
		NumStates: 1,
		Start:     0,
		End:       0,
		Transitions: []Transition{
			{From: 0, To: 0, Word: "ACTION"},
			{From: 0, To: 0, Word: "ONE"},
			{From: 0, To: 0, Word: "TORCH"},
		},
	},
}
