// Package demo holds the sample collection used by the seed command and
// the read-only demo mode of the server.
package demo

import (
	"context"
	"fmt"

	"github.com/mrlokans/hikam/internal/entities"
	"github.com/mrlokans/hikam/internal/services"
)

// Quotes is a sample collection of Arabic proverbs and sayings.
var Quotes = []services.QuoteInput{
	{Text: "الصبر مفتاح الفرج", Source: "مثل عربي", Category: "صبر"},
	{Text: "من صبر ظفر", Source: "مثل عربي", Category: "صبر"},
	{Text: "إن مع العسر يسرا", Source: "القرآن الكريم", Category: "صبر"},
	{Text: "العلم نور والجهل ظلام", Source: "مثل عربي", Category: "علم"},
	{Text: "اطلبوا العلم من المهد إلى اللحد", Source: "قول مأثور", Category: "علم"},
	{Text: "العلم في الصغر كالنقش على الحجر", Source: "مثل عربي", Category: "علم"},
	{Text: "من جد وجد ومن زرع حصد", Source: "مثل عربي", Category: "عمل"},
	{Text: "الوقت كالسيف إن لم تقطعه قطعك", Source: "مثل عربي", Category: "وقت"},
	{Text: "لا تؤجل عمل اليوم إلى الغد", Source: "مثل عربي", Category: "وقت"},
	{Text: "الصديق وقت الضيق", Source: "مثل عربي", Category: "صداقة"},
	{Text: "قل لي من تصاحب أقل لك من أنت", Source: "مثل عربي", Category: "صداقة"},
	{Text: "رب أخ لك لم تلده أمك", Source: "مثل عربي", Category: "صداقة"},
	{Text: "خير الكلام ما قل ودل", Source: "مثل عربي", Category: "حكمة"},
	{Text: "إذا كان الكلام من فضة فالسكوت من ذهب", Source: "مثل عربي", Category: "حكمة"},
	{Text: "ليس كل ما يلمع ذهبا", Source: "مثل عربي", Category: "حكمة"},
	{Text: "القناعة كنز لا يفنى", Source: "مثل عربي", Category: "قناعة"},
	{Text: "الأمل يضيء الطريق في أحلك الليالي", Source: "حكمة", Category: "أمل"},
	{Text: "تفاءلوا بالخير تجدوه", Source: "قول مأثور", Category: "أمل"},
	{Text: "الحب الحقيقي لا يعرف المستحيل", Source: "حكمة", Category: "حب"},
	{Text: "السعادة في الرضا بما قسم الله", Source: "حكمة", Category: "سعادة"},
	{Text: "الحكمة ضالة المؤمن", Source: "قول مأثور", Category: "حكمة"},
	{Text: "من عرف نفسه عرف ربه", Source: "قول مأثور", Category: "معرفة"},
	{Text: "العقل زينة والأدب حلية", Source: "حكمة", Category: "أدب"},
	{Text: "اتق شر من أحسنت إليه", Source: "مثل عربي", Category: "حكمة"},
	{Text: "على قدر أهل العزم تأتي العزائم", Source: "المتنبي", Category: "عزم"},
}

// DevotionalBook is a short book of morning and evening remembrances.
func DevotionalBook() entities.Book {
	return entities.Book{
		Title:  "أذكار الصباح والمساء",
		Author: "مختارات",
		Kind:   entities.BookKindDevotional,
		Pages: []entities.BookPage{
			{Content: "أصبحنا وأصبح الملك لله، والحمد لله، لا إله إلا الله وحده لا شريك له."},
			{Content: "اللهم بك أصبحنا، وبك أمسينا، وبك نحيا، وبك نموت، وإليك النشور."},
			{Content: "سبحان الله وبحمده، عدد خلقه، ورضا نفسه، وزنة عرشه، ومداد كلماته."},
			{Content: "أمسينا وأمسى الملك لله، والحمد لله، لا إله إلا الله وحده لا شريك له."},
			{Content: "اللهم بك أمسينا، وبك أصبحنا، وبك نحيا، وبك نموت، وإليك المصير."},
		},
	}
}

// BookCreator stores a book with its pages.
type BookCreator interface {
	CreateBook(book *entities.Book) error
}

// QuoteImporter stores a batch of quotes for a user.
type QuoteImporter interface {
	ImportQuotes(ctx context.Context, userID uint, inputs []services.QuoteInput) (services.ImportResult, error)
}

// Seed loads the sample quotes for userID and, when books is not nil, the
// devotional book. Quotes already present are skipped, so seeding twice is
// harmless for quotes.
func Seed(ctx context.Context, quotes QuoteImporter, books BookCreator, userID uint) (services.ImportResult, error) {
	result, err := quotes.ImportQuotes(ctx, userID, Quotes)
	if err != nil {
		return result, fmt.Errorf("seed quotes: %w", err)
	}
	if books != nil {
		book := DevotionalBook()
		if err := books.CreateBook(&book); err != nil {
			return result, fmt.Errorf("seed book: %w", err)
		}
	}
	return result, nil
}
