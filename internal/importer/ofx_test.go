package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis/pennyflow/internal/model"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20260301120000[0:GMT]
<DTEND>20260331120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260315120000[0:GMT]
<TRNAMT>-25.50
<FITID>2026031501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20260316120000[0:GMT]
<TRNAMT>2500.00
<FITID>2026031601
<NAME>ACME CORP PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>3000.00
<DTASOF>20260331120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestOFXParser_Parse(t *testing.T) {
	ctx := context.Background()
	parser := NewOFXParser()

	txns, err := parser.Parse(ctx, strings.NewReader(sampleBankOFX), "user-1", "acct-1")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	debit := txns[0]
	assert.Equal(t, "STARBUCKS STORE #1234", debit.Description)
	assert.Equal(t, model.DirectionDebit, debit.Direction)
	assert.True(t, debit.Amount.Equal(decimal.NewFromFloat(25.50)), "got %s", debit.Amount)
	assert.Equal(t, "user-1", debit.UserID)
	assert.Equal(t, "acct-1", debit.AccountID)
	assert.NotEmpty(t, debit.Hash)

	credit := txns[1]
	assert.Equal(t, model.DirectionCredit, credit.Direction)
	assert.True(t, credit.Amount.Equal(decimal.NewFromInt(2500)), "got %s", credit.Amount)
}

func TestOFXParser_PreprocessOFX(t *testing.T) {
	parser := NewOFXParser()

	t.Run("uppercases severity", func(t *testing.T) {
		got := parser.preprocessOFX("<SEVERITY>Info</SEVERITY>")
		assert.Equal(t, "<SEVERITY>INFO</SEVERITY>", got)
	})

	t.Run("closes dangling SGML tags", func(t *testing.T) {
		got := parser.preprocessOFX("<OFX>\n<BANKMSGSRSV1\n</OFX>")
		assert.Contains(t, got, "<BANKMSGSRSV1>")
	})

	t.Run("trims leading whitespace", func(t *testing.T) {
		got := parser.preprocessOFX("\n\n  OFXHEADER:100")
		assert.True(t, strings.HasPrefix(got, "OFXHEADER"))
	})
}

func TestOFXParser_RejectsGarbage(t *testing.T) {
	parser := NewOFXParser()
	_, err := parser.Parse(context.Background(), strings.NewReader("not an ofx file"), "user-1", "")
	assert.Error(t, err)
}
