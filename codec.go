package sheetpos

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timestampLayout is the sales-history cell format: "dd.MM.yyyy HH:mm:ss".
const timestampLayout = "02.01.2006 15:04:05"

// numberPattern accepts plain decimals with either '.' or ',' as separator.
// Anything else decodes to an absent value, never to an error.
var numberPattern = regexp.MustCompile(`^\d*([.,]\d+)?$`)

// colorPattern matches hex colors with 3, 4, 6 or 8 digits.
var colorPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3,4}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

// itemPattern extracts "<name>[ (<volume>)] x<quantity>" from one item
// segment of the sales-history items cell.
var itemPattern = regexp.MustCompile(`^(.+?)(?:\s+\((.+?)\))?\s+x(\d+)$`)

// itemSeparator joins item segments inside the items cell.
const itemSeparator = ", "

// rowCodec maps raw rows (ordered string cells) to typed entities and back.
// Decoding is lenient: blank or malformed rows are skipped with a log line,
// never surfaced as errors, because real sheets carry trailing junk rows.
type rowCodec struct {
	log *slog.Logger
	now func() time.Time
}

// cell returns the value at offset i, or "" when the row is shorter. Range
// reads routinely omit trailing empty cells.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseNumber decodes a locale-tolerant decimal. Empty and non-numeric
// values yield nil.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || !numberPattern.MatchString(s) {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}

// formatNumber renders a number with ',' as the decimal separator, the
// convention of the backing sheets.
func formatNumber(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', -1, 64), ".", ",")
}

// normalizeColor keeps valid hex colors and passes unexpected non-empty
// values through unchanged so legacy data is never destroyed on rewrite.
func (c rowCodec) normalizeColor(s string) string {
	if s == "" {
		return ""
	}
	if !colorPattern.MatchString(s) {
		c.log.Debug("keeping non-hex color value as-is", "value", s)
	}
	return s
}

// decodeTimestamp normalizes a stored timestamp to the target layout. The
// raw value is kept when neither the target layout nor ISO-8601 parses it.
func (c rowCodec) decodeTimestamp(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if _, err := time.Parse(timestampLayout, s); err == nil {
		return s
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(timestampLayout)
	}
	c.log.Debug("keeping unparseable timestamp as-is", "value", s)
	return s
}

// encodeTimestamp renders a timestamp cell. Fallback chain: already in the
// target layout → ISO-8601 reparse → a handful of common layouts → now.
// It always yields a valid timestamp string; a bad input never fails the
// whole row write.
func (c rowCodec) encodeTimestamp(s string) string {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(timestampLayout, s); err == nil {
		return s
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(timestampLayout)
	}
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		"2006-01-02",
		time.RFC1123,
		time.UnixDate,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(timestampLayout)
		}
	}
	c.log.Warn("timestamp not parseable, substituting current time", "value", s)
	return c.now().Format(timestampLayout)
}

// decodeItems parses the delimited items cell. Unparsable segments are
// dropped with a warning; a malformed cell still yields an order, possibly
// with an empty item list.
func (c rowCodec) decodeItems(s string) []OrderItem {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var items []OrderItem
	for _, part := range strings.Split(s, itemSeparator) {
		m := itemPattern.FindStringSubmatch(part)
		if m == nil {
			c.log.Warn("dropping unparsable order item", "item", part)
			continue
		}
		qty, err := strconv.Atoi(m[3])
		if err != nil {
			c.log.Warn("dropping order item with bad quantity", "item", part)
			continue
		}
		items = append(items, OrderItem{
			ID:       contentID(m[1], m[2]),
			Name:     m[1],
			Volume:   m[2],
			Quantity: qty,
		})
	}
	return items
}

// encodeItems renders the items cell: "<name>[ (<volume>)] x<qty>" segments
// joined by ", ". The volume segment is omitted when absent.
func encodeItems(items []OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		var b strings.Builder
		b.WriteString(it.Name)
		if it.Volume != "" {
			b.WriteString(" (")
			b.WriteString(it.Volume)
			b.WriteString(")")
		}
		fmt.Fprintf(&b, " x%d", it.Quantity)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, itemSeparator)
}

// decodeProduct converts a raw row to a Product. Returns false for blank
// rows and rows without a name.
func (c rowCodec) decodeProduct(row []string) (Product, bool) {
	name := cell(row, prodColName)
	if strings.TrimSpace(name) == "" {
		c.log.Debug("skipping product row without name")
		return Product{}, false
	}
	volume := cell(row, prodColVolume)
	return Product{
		ID:       contentID(name, volume),
		Name:     name,
		Volume:   volume,
		Price:    parseNumber(cell(row, prodColPrice)),
		ImageURL: cell(row, prodColImageURL),
		AIHint:   cell(row, prodColAIHint),
	}, true
}

// encodeProduct converts a Product to a raw row. Absent optional fields
// render as empty cells.
func (c rowCodec) encodeProduct(p Product) []string {
	row := make([]string, prodColCount)
	row[prodColName] = p.Name
	row[prodColVolume] = p.Volume
	if p.Price != nil {
		row[prodColPrice] = formatNumber(*p.Price)
	}
	row[prodColImageURL] = p.ImageURL
	row[prodColAIHint] = p.AIHint
	return row
}

// decodeUser converts a raw row to a User. Returns false for rows without
// a login.
func (c rowCodec) decodeUser(row []string) (User, bool) {
	login := cell(row, userColLogin)
	if strings.TrimSpace(login) == "" {
		c.log.Debug("skipping user row without login")
		return User{}, false
	}
	return User{
		ID:           cell(row, userColID),
		Login:        login,
		PasswordHash: cell(row, userColPasswordHash),
		FirstName:    cell(row, userColFirstName),
		MiddleName:   cell(row, userColMiddleName),
		LastName:     cell(row, userColLastName),
		Position:     cell(row, userColPosition),
		IconColor:    c.normalizeColor(cell(row, userColIconColor)),
	}, true
}

func (c rowCodec) encodeUser(u User) []string {
	row := make([]string, userColCount)
	row[userColID] = u.ID
	row[userColLogin] = u.Login
	row[userColPasswordHash] = u.PasswordHash
	row[userColFirstName] = u.FirstName
	row[userColMiddleName] = u.MiddleName
	row[userColLastName] = u.LastName
	row[userColPosition] = u.Position
	row[userColIconColor] = u.IconColor
	return row
}

// decodeOrder converts a raw row to an Order. Returns false for rows
// without an order id.
func (c rowCodec) decodeOrder(row []string) (Order, bool) {
	id := cell(row, orderColID)
	if strings.TrimSpace(id) == "" {
		c.log.Debug("skipping order row without id")
		return Order{}, false
	}
	var total float64
	if v := parseNumber(cell(row, orderColTotalPrice)); v != nil {
		total = *v
	}
	return Order{
		ID:            id,
		Timestamp:     c.decodeTimestamp(cell(row, orderColTimestamp)),
		Items:         c.decodeItems(cell(row, orderColItems)),
		PaymentMethod: cell(row, orderColPaymentMethod),
		TotalPrice:    total,
		Employee:      cell(row, orderColEmployee),
	}, true
}

func (c rowCodec) encodeOrder(o Order) []string {
	row := make([]string, orderColCount)
	row[orderColID] = o.ID
	row[orderColTimestamp] = c.encodeTimestamp(o.Timestamp)
	row[orderColItems] = encodeItems(o.Items)
	row[orderColPaymentMethod] = o.PaymentMethod
	row[orderColTotalPrice] = formatNumber(o.TotalPrice)
	row[orderColEmployee] = o.Employee
	return row
}
