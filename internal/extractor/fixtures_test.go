package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/parser"
)

func extractSource(t *testing.T, src string) []*model.ClassInfo {
	t.Helper()
	root, err := parser.NewRubyParser().Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	return Extract(root, "fixture.rb")
}

func TestFixtureSimpleClass(t *testing.T) {
	classes := extractSource(t, `class Calculator
  def initialize(tax_rate)
    @tax_rate = tax_rate
  end

  def calculate(amount)
    amount + tax_amount(amount)
  end

  private

  def tax_amount(amount)
    amount * @tax_rate
  end
end
`)
	require.Len(t, classes, 1)
	ci := classes[0]

	assert.Equal(t, "Calculator", ci.Name)
	assert.Equal(t, 1, ci.LineStart)
	assert.Equal(t, 15, ci.LineEnd)
	require.Len(t, ci.Methods, 3)
	assert.Equal(t, []string{"@tax_rate"}, ci.InstanceVariables)

	calculate := ci.Method("calculate")
	require.NotNil(t, calculate)
	assert.Equal(t, model.Public, calculate.Visibility)
	assert.True(t, calculate.Calls("tax_amount"))
	assert.Equal(t, 1, calculate.Complexity)

	taxAmount := ci.Method("tax_amount")
	require.NotNil(t, taxAmount)
	assert.Equal(t, model.Private, taxAmount.Visibility)
	assert.Equal(t, []string{"@tax_rate"}, taxAmount.InstanceVariables)

	public := ci.PublicMethods()
	require.Len(t, public, 1)
	assert.Equal(t, "calculate", public[0].Name)
}

func TestFixtureInheritance(t *testing.T) {
	classes := extractSource(t, `class Animal
  def speak
    raise NotImplementedError
  end
end

class Dog < Animal
  def speak
    "woof"
  end

  def fetch(item)
    "fetches #{item}"
  end
end
`)
	require.Len(t, classes, 2)

	animal, dog := classes[0], classes[1]
	assert.False(t, animal.HasSuperclass())
	assert.Equal(t, []string{"NotImplementedError"}, animal.Method("speak").Raises)

	assert.Equal(t, "Animal", dog.Superclass)
	speak := dog.Method("speak")
	require.NotNil(t, speak)
	assert.False(t, speak.CallsSuper)
	assert.Equal(t, 8, speak.LineStart)
	assert.Equal(t, 10, speak.LineEnd)
	assert.Empty(t, dog.Method("fetch").CalledMethods)
}

func TestFixtureDataClass(t *testing.T) {
	classes := extractSource(t, `class UserData
  attr_reader :name, :email, :age

  def initialize(name:, email:, age:)
    @name = name
    @email = email
    @age = age
  end
end
`)
	require.Len(t, classes, 1)
	ci := classes[0]

	assert.Equal(t, []string{"name", "email", "age"}, ci.AttrReaders)
	assert.True(t, ci.IsDataClass())
	assert.Equal(t, 3, ci.Constructor().KeywordParamCount())
	assert.Equal(t, []string{"@name", "@email", "@age"}, ci.InstanceVariables)
}

func TestFixtureConcreteDependencies(t *testing.T) {
	classes := extractSource(t, `class OrderService
  def create(params)
    order = OrderRepository.new.save(params)
    EmailNotifier.new.notify(order)
    SlackNotifier.new.post(order)
    AuditLogger.new.log(order)
    InventoryManager.new.reserve(order)
    PaymentGateway.new.charge(order)
    order
  end
end
`)
	require.Len(t, classes, 1)
	create := classes[0].Method("create")
	require.NotNil(t, create)

	var instantiated []string
	for _, cs := range create.CallSites {
		if cs.IsInstantiation() {
			instantiated = append(instantiated, cs.Receiver.Name)
		}
	}
	assert.ElementsMatch(t, []string{
		"OrderRepository", "EmailNotifier", "SlackNotifier",
		"AuditLogger", "InventoryManager", "PaymentGateway",
	}, instantiated)
	assert.Equal(t, 6, create.CountCalls("new"))
}

func TestFixtureInjectedDependencies(t *testing.T) {
	classes := extractSource(t, `class OrderService
  def initialize(repository:, notifier:)
    @repository = repository
    @notifier = notifier
  end

  def create(params)
    order = @repository.save(params)
    @notifier.notify(order)
    order
  end
end
`)
	require.Len(t, classes, 1)
	create := classes[0].Method("create")
	require.NotNil(t, create)

	require.Len(t, create.CallSites, 2)
	assert.Equal(t, model.InstanceVarReceiver("@repository"), create.CallSites[0].Receiver)
	assert.Equal(t, model.InstanceVarReceiver("@notifier"), create.CallSites[1].Receiver)
}

func TestFixtureCaseWhen(t *testing.T) {
	classes := extractSource(t, `# frozen_string_literal: true

# OCP violation: case/when pattern that requires modification for new types
class TypeHandler
  def process(item)
    case item.type
    when :text
      process_text(item)
    when :image
      process_image(item)
    when :video
      process_video(item)
    end
  end

  private

  def process_text(item)
    item.content
  end
end

class SimpleProcessor
  def process(item)
    item.to_s
  end
end
`)
	require.Len(t, classes, 2)

	process := classes[0].Method("process")
	require.NotNil(t, process)
	assert.Equal(t, 3, process.CaseArms)
	assert.Equal(t, 4, process.Complexity)
	assert.Equal(t, model.LocalVarReceiver("item"), process.CallSites[0].Receiver)

	assert.Equal(t, 0, classes[1].Method("process").CaseArms)
}

func TestFixtureOverrideWithGuard(t *testing.T) {
	classes := extractSource(t, `class BaseLogger
  def log(message)
    puts message
  end
end

class StrictLogger < BaseLogger
  def log(message, level = :info)
    raise ArgumentError, "message too short" if message.length < 5

    super(message)
  end
end
`)
	require.Len(t, classes, 2)

	log := classes[1].Method("log")
	require.NotNil(t, log)
	assert.Equal(t, []string{"ArgumentError"}, log.Raises)
	assert.True(t, log.CallsSuper)
	assert.Equal(t, 2, log.Complexity)
	require.Len(t, log.Params, 2)
	assert.Equal(t, model.ParamOptional, log.Params[1].Kind)
}

func TestFixtureSyntaxErrorYieldsNoTree(t *testing.T) {
	_, err := parser.NewRubyParser().Parse(context.Background(), []byte("class Broken\n  def x(\n"))
	require.ErrorIs(t, err, parser.ErrSyntax)
	assert.Empty(t, Extract(nil, "broken.rb"))
}
