package phrases

// Response names a voice response template.
type Response string

const (
	ResponseListening  Response = "listening"
	ResponseProcessing Response = "processing"
	ResponseSuccess    Response = "success"
	ResponseError      Response = "error"
	ResponseUnknown    Response = "unknown"
)

var responses = map[Language]map[Response]string{
	English: {
		ResponseListening:  "Listening...",
		ResponseProcessing: "Processing...",
		ResponseSuccess:    "Done.",
		ResponseError:      "Sorry, voice recognition failed.",
		ResponseUnknown:    "I did not understand that command.",
	},
	Tamil: {
		ResponseListening:  "Kekkirathu...",
		ResponseProcessing: "Seyalpuduthugirathu...",
		ResponseSuccess:    "Mudinthathu.",
		ResponseError:      "Mannikkavum, puriyavillai.",
		ResponseUnknown:    "Kattalai puriyavillai.",
	},
	Hindi: {
		ResponseListening:  "Sun raha hoon...",
		ResponseProcessing: "Kaam chal raha hai...",
		ResponseSuccess:    "Ho gaya.",
		ResponseError:      "Maaf kijiye, samajh nahi aaya.",
		ResponseUnknown:    "Aadesh samajh nahi aaya.",
	},
	Marwadi: {
		ResponseListening:  "Sunu chu...",
		ResponseProcessing: "Kaam chalu hai...",
		ResponseSuccess:    "Hogyo.",
		ResponseError:      "Maaf karjo, samjyo koni.",
		ResponseUnknown:    "Hukam samjyo koni.",
	},
}

// Text returns the template for lang, or the en-US one when lang has none.
func Text(lang Language, r Response) string {
	if text, ok := responses[lang][r]; ok {
		return text
	}
	return responses[Default][r]
}
