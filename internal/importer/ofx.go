package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hollis/pennyflow/internal/model"
)

// OFXParser parses OFX/QFX bank exports.
type OFXParser struct{}

// NewOFXParser creates a new OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in bank-produced OFX files:
// stray leading whitespace, mixed-case SEVERITY values, and SGML-style tags
// missing their closing bracket.
func (p *OFXParser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = tagFixRegex.ReplaceAllString(content, "$1>")
	return content
}

// Parse reads an OFX/QFX file and returns transactions for the given user.
// The OFX account the statement belongs to is ignored in favor of the
// explicit accountID.
func (p *OFXParser) Parse(ctx context.Context, reader io.Reader, userID, accountID string) ([]model.Transaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, ofxTx := range stmt.BankTranList.Transactions {
			transactions = append(transactions, p.convertTransaction(ofxTx, userID, accountID))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, ofxTx := range stmt.BankTranList.Transactions {
			transactions = append(transactions, p.convertTransaction(ofxTx, userID, accountID))
		}
	}

	slog.Info("parsed OFX file", "transactions", len(transactions))
	return transactions, nil
}

// convertTransaction maps an OFX transaction to our model. OFX amounts are
// signed, negative for outflows; we keep the magnitude and record the
// direction separately.
func (p *OFXParser) convertTransaction(ofxTx ofxgo.Transaction, userID, accountID string) model.Transaction {
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)

	direction := model.DirectionDebit
	if amount.IsPositive() {
		direction = model.DirectionCredit
	}
	amount = amount.Abs()

	description := strings.TrimSpace(string(ofxTx.Name))
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		description = strings.TrimSpace(string(ofxTx.Payee.Name))
	}
	if description == "" {
		description = strings.TrimSpace(string(ofxTx.Memo))
	}

	txn := model.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccountID:   accountID,
		Date:        ofxTx.DtPosted.Time,
		Description: description,
		Amount:      amount,
		Direction:   direction,
	}
	txn.Hash = txn.GenerateHash()
	return txn
}
