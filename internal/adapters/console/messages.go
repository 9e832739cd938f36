package console

import (
	"fmt"

	"github.com/jsamuelsen/library-console/internal/domain"
)

// Supported console languages.
const (
	LanguageEnglish = "en"
	LanguageKorean  = "ko"
)

// Messages holds every user-facing string the console prints.
// Fields ending in "f" are fmt format strings.
type Messages struct {
	MenuTitle string
	MenuItems [8]string
	Prompt    string

	PromptTitle       string
	PromptAuthor      string
	PromptBorrowTitle string
	PromptReturnTitle string

	LabelTitle  string
	LabelAuthor string

	BookAddedf    string
	NoBooks       string
	ListHeader    string
	BookLinef     string
	SearchHeaderf string
	NotFound      string

	NotRegisteredf  string
	BorrowSuccessf  string
	OutOfStockf     string
	ReturnSuccessf  string
	NoStock         string
	StockHeader     string
	StockLinef      string
	NotANumber      string
	InvalidSelector string
	Farewell        string
}

// English returns the English message catalogue.
func English() Messages {
	return Messages{
		MenuTitle: "Library Management",
		MenuItems: [8]string{
			"1. Add a book",
			"2. List all books",
			"3. Search by title",
			"4. Search by author",
			"5. Borrow a book",
			"6. Return a book",
			"7. Show stock",
			"8. Exit",
		},
		Prompt: "Choice: ",

		PromptTitle:       "Title: ",
		PromptAuthor:      "Author: ",
		PromptBorrowTitle: "Title to borrow: ",
		PromptReturnTitle: "Title to return: ",

		LabelTitle:  "Title",
		LabelAuthor: "Author",

		BookAddedf:    "Book added: %s by %s",
		NoBooks:       "No books are registered.",
		ListHeader:    "Books:",
		BookLinef:     "- %s by %s",
		SearchHeaderf: "%s search results:",
		NotFound:      "No matching book was found.",

		NotRegisteredf:  "%s is not registered in the library.",
		BorrowSuccessf:  "Borrowed %s. Copies remaining: %d",
		OutOfStockf:     "%s is out of stock.",
		ReturnSuccessf:  "Returned %s. Copies available: %d",
		NoStock:         "No stock information.",
		StockHeader:     "Stock:",
		StockLinef:      "- %s : %d",
		NotANumber:      "Invalid input. Please enter a number.",
		InvalidSelector: "Invalid choice. Please try again.",
		Farewell:        "Exiting the program.",
	}
}

// Korean returns the Korean message catalogue.
func Korean() Messages {
	return Messages{
		MenuTitle: "도서관 관리 프로그램",
		MenuItems: [8]string{
			"1. 책 추가",
			"2. 모든 책 출력",
			"3. 책 제목으로 검색",
			"4. 작가의 책 검색",
			"5. 도서 대여",
			"6. 도서 반납",
			"7. 재고 확인",
			"8. 종료",
		},
		Prompt: "선택: ",

		PromptTitle:       "책 제목: ",
		PromptAuthor:      "책 저자: ",
		PromptBorrowTitle: "대여할 책 제목: ",
		PromptReturnTitle: "반납할 책 제목: ",

		LabelTitle:  "제목",
		LabelAuthor: "저자",

		BookAddedf:    "책이 추가되었습니다: %s by %s",
		NoBooks:       "현재 등록된 책이 없습니다.",
		ListHeader:    "현재 도서 목록:",
		BookLinef:     "- %s by %s",
		SearchHeaderf: "%s 검색 결과:",
		NotFound:      "현재 발견된 책이 없습니다.",

		NotRegisteredf:  "도서관에 %s이 등록되어 있지 않습니다.",
		BorrowSuccessf:  "%s대여 성공. 남은 재고 : %d",
		OutOfStockf:     "%s 재고가 없습니다.",
		ReturnSuccessf:  "%s 반납 완료. 현재 재고 : %d",
		NoStock:         "재고 정보가 없습니다",
		StockHeader:     "전체 재고: ",
		StockLinef:      "- %s : %d권",
		NotANumber:      "잘못된 입력입니다. 숫자를 입력하세요.",
		InvalidSelector: "잘못된 입력입니다. 다시 시도하세요.",
		Farewell:        "프로그램을 종료합니다.",
	}
}

// MessagesFor returns the catalogue for language.
func MessagesFor(language string) (Messages, error) {
	switch language {
	case "", LanguageEnglish:
		return English(), nil
	case LanguageKorean:
		return Korean(), nil
	default:
		return Messages{}, fmt.Errorf("unsupported console language %q", language)
	}
}

// label localizes a search label. Unknown labels are printed as given.
func (m Messages) label(l string) string {
	switch l {
	case domain.LabelTitle:
		return m.LabelTitle
	case domain.LabelAuthor:
		return m.LabelAuthor
	default:
		return l
	}
}
